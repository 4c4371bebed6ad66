package load

import (
	"fmt"
	"strings"

	"flexmap/internal/diagnostic"
	"flexmap/internal/document"
	"flexmap/internal/match"
	"flexmap/internal/metamodel"
	"flexmap/internal/model"
	"flexmap/internal/schemaindex"
)

const maxSuggestions = 3

// builder holds the working state of one load and receives the document events.
type builder struct {
	global     *metamodel.Registry
	registry   *metamodel.Registry
	index      *schemaindex.Index
	config     Config
	similarity match.Similarity

	stack    stack
	contents []*model.Instance
	deferred []deferredRef
	ids      *idIndex
	trace    map[*model.Instance]int
	scripts  []string
	diags    *diagnostic.Diagnostics
}

func newBuilder(r *Resource, diags *diagnostic.Diagnostics) *builder {
	reg := metamodel.NewRegistry(r.packages...)

	return &builder{
		global:     r.global,
		registry:   reg,
		index:      schemaindex.New(reg),
		config:     r.config,
		similarity: r.similarity,
		ids:        newIDIndex(),
		trace:      make(map[*model.Instance]int),
		diags:      diags,
	}
}

func (b *builder) matcher() match.Matcher {
	return match.Matcher{Threshold: b.config.FuzzyMatchingThreshold, Similarity: b.similarity}
}

func (b *builder) StartDocument() {}

func (b *builder) StartElement(el *document.Element) {
	top, ok := b.stack.peek()

	switch {
	case !ok || (top.kind == frameUnmapped && b.config.OrphansAsTopLevel):
		b.startRoot(el)
	case top.kind == frameUnmapped:
		b.unmapped(el, nil)
	case top.kind == frameSlot:
		b.startInSlot(top, el)
	default:
		b.startInInstance(top.instance, el)
	}
}

func (b *builder) startRoot(el *document.Element) {
	c, ok := b.index.TopLevel(b.matcher(), el.Name)
	if !ok {
		b.unmapped(el, b.index.ConcreteClassifiers())
		return
	}

	inst := b.create(c, el)
	b.contents = append(b.contents, inst)
	b.stack.push(frame{kind: frameInstance, instance: inst})
	b.assignAttributes(inst, el)
}

func (b *builder) startInSlot(slot frame, el *document.Element) {
	candidates := b.index.Subtypes(slot.feature.Target)

	c, ok := match.Find(b.matcher(), el.Name, candidates)
	if !ok {
		b.unmapped(el, candidates)
		return
	}

	b.attach(slot.instance, slot.feature, c, el)
}

func (b *builder) startInInstance(parent *model.Instance, el *document.Element) {
	if len(el.Attrs) == 0 {
		if text, ok := el.SingleText(); ok {
			if f, ok := match.Find(b.matcher(), el.Name, b.index.Attributes(parent.Classifier)); ok {
				b.setAttributeValue(parent, f, el.Name, strings.TrimSpace(text), el.Line)
				b.stack.push(frame{kind: frameUnmapped})

				return
			}
		}

		containments := b.index.Containments(parent.Classifier)

		var (
			f  *metamodel.Feature
			ok bool
		)

		if b.config.FuzzyContainmentMatching {
			f, ok = match.Find(b.matcher(), el.Name, containments)
		} else {
			f, ok = match.Exact(el.Name, containments)
		}

		if ok {
			b.stack.push(frame{kind: frameSlot, instance: parent, feature: f})
			return
		}
	}

	candidates := b.index.ContainmentCandidates(parent.Classifier)

	c, ok := match.Find(b.matcher(), el.Name, candidates)
	if !ok {
		b.unmapped(el, candidates)
		return
	}

	f, _ := b.index.ContainmentFor(parent.Classifier, c)
	b.attach(parent, f, c, el)
}

// attach creates an instance of c for el and stores it in the containment f of parent.
// A filled single-valued slot is left untouched and el becomes unmapped.
func (b *builder) attach(parent *model.Instance, f *metamodel.Feature, c *metamodel.Classifier, el *document.Element) {
	if !f.Many && parent.IsSet(f) {
		b.diags.AddWarning(diagnostic.CodeContainmentConflict,
			fmt.Sprintf("Element %s conflicts with the value already held by %s of %s", el.Name, f.Name, parent.Classifier.Name),
			el.Line)
		b.stack.push(frame{kind: frameUnmapped})

		return
	}

	inst := b.create(c, el)
	if f.Many {
		parent.Append(f, inst)
	} else {
		parent.Set(f, inst)
	}

	b.stack.push(frame{kind: frameInstance, instance: inst})
	b.assignAttributes(inst, el)
}

func (b *builder) create(c *metamodel.Classifier, el *document.Element) *model.Instance {
	inst := model.New(c)
	b.traceLine(inst, el.Line)

	return inst
}

func (b *builder) unmapped(el *document.Element, candidates []*metamodel.Classifier) {
	var suggestions []string
	if len(candidates) > 0 {
		suggestions = match.Suggest(b.matcher(), el.Name, candidates, maxSuggestions)
	}

	b.diags.AddWarning(diagnostic.CodeUnmappedElement,
		fmt.Sprintf("Could not map element %s to an object", el.Name),
		el.Line, suggestions...)
	b.stack.push(frame{kind: frameUnmapped})
}

func (b *builder) EndElement(el *document.Element) {
	top, ok := b.stack.pop()
	if ok && top.kind == frameInstance {
		b.traceLine(top.instance, el.Line)
	}
}

// traceLine records the line an instance was created at. The first line wins.
func (b *builder) traceLine(inst *model.Instance, line int) {
	if _, ok := b.trace[inst]; !ok {
		b.trace[inst] = line
	}
}

func (b *builder) ProcessingInstruction(pi *document.ProcessingInstruction) {
	switch strings.ToLower(pi.Target) {
	case "nsuri":
		pkg, ok := b.global.Lookup(pi.Data)
		if !ok {
			b.diags.AddWarning(diagnostic.CodeUnknownPackage,
				fmt.Sprintf("Failed to locate package for nsuri %s", pi.Data), pi.Line)

			return
		}

		if b.registry.Register(pkg) {
			b.index.Reset()
		}
	case "eol":
		b.scripts = append(b.scripts, pi.Data)
	default:
		b.applyOption(pi.Target, pi.Data, pi.Line)
	}
}

func (b *builder) applyOption(key, value string, line int) {
	if err := b.config.Apply(key, value); err != nil {
		b.diags.AddWarning(diagnostic.CodeInvalidOption,
			fmt.Sprintf("Could not process option %s: %s", key, errorMessage(err)), line)
	}
}

func (b *builder) EndDocument() {
	b.resolveReferences()
}
