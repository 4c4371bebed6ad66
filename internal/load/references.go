package load

import (
	"fmt"
	"strings"

	"flexmap/internal/diagnostic"
	"flexmap/internal/metamodel"
	"flexmap/internal/model"
)

const wildcard = "*"

// deferredRef is a reference value waiting for the whole document to be built.
type deferredRef struct {
	owner     *model.Instance
	feature   *metamodel.Feature
	attribute string
	value     string
	line      int
}

func (b *builder) deferReference(owner *model.Instance, f *metamodel.Feature, attr, raw string, line int) {
	if !f.Many {
		b.deferred = append(b.deferred, deferredRef{owner: owner, feature: f, attribute: attr, value: raw, line: line})
		return
	}

	for _, piece := range strings.Split(raw, ",") {
		b.deferred = append(b.deferred, deferredRef{
			owner:     owner,
			feature:   f,
			attribute: attr,
			value:     strings.TrimSpace(piece),
			line:      line,
		})
	}
}

// resolveReferences runs once, in queue order. What cannot be resolved is reported;
// the queue and the identifier index are dropped afterwards.
func (b *builder) resolveReferences() {
	var (
		unresolved []deferredRef
		all        []*model.Instance
		scanned    bool
	)

	for _, ref := range b.deferred {
		if ref.feature.Many && ref.value == wildcard {
			if !scanned {
				all, scanned = model.AllContents(b.contents), true
			}

			for _, candidate := range all {
				if ref.feature.Target.IsAssignableFrom(candidate.Classifier) {
					ref.owner.Append(ref.feature, candidate)
				}
			}

			continue
		}

		target, ok := b.ids.first(ref.value, ref.feature.Target)
		if !ok {
			unresolved = append(unresolved, ref)
			continue
		}

		if ref.feature.Many {
			ref.owner.Append(ref.feature, target)
		} else {
			ref.owner.Set(ref.feature, target)
		}
	}

	for _, ref := range unresolved {
		b.diags.AddWarning(diagnostic.CodeUnresolvedReference,
			fmt.Sprintf("Could not resolve target %s for reference %s (%s)", ref.value, ref.attribute, ref.feature.Name),
			ref.line)
	}

	b.deferred = nil
	b.ids = newIDIndex()
}
