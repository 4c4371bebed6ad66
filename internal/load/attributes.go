package load

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"flexmap/internal/diagnostic"
	"flexmap/internal/document"
	"flexmap/internal/match"
	"flexmap/internal/metamodel"
	"flexmap/internal/model"
)

// assignAttributes maps every attribute of el onto a feature of inst. A feature
// matched once is taken out of the candidates for the rest of the element.
func (b *builder) assignAttributes(inst *model.Instance, el *document.Element) {
	remaining := b.index.CandidateFeatures(inst.Classifier)

	for _, a := range el.Attrs {
		f, ok := match.Find(b.matcher(), a.Name, remaining)
		if !ok {
			b.diags.AddWarning(diagnostic.CodeUnmappedAttribute,
				fmt.Sprintf("Could not map attribute %s to a structural feature of %s", a.Name, inst.Classifier.Name),
				el.Line, match.Suggest(b.matcher(), a.Name, remaining, maxSuggestions)...)

			continue
		}

		remaining = without(remaining, f)

		if f.IsAttribute() {
			b.setAttributeValue(inst, f, a.Name, a.Value, el.Line)
			continue
		}

		b.deferReference(inst, f, a.Name, a.Value, el.Line)
	}
}

// setAttributeValue converts raw and stores it. Many-valued features take a
// comma-separated list; pieces that fail conversion are reported and skipped.
func (b *builder) setAttributeValue(inst *model.Instance, f *metamodel.Feature, attr, raw string, line int) {
	if !f.Many {
		v, ok := b.convert(f, attr, raw, line)
		if !ok {
			return
		}

		inst.Set(f, v)
		b.registerID(inst, f, raw)

		return
	}

	for _, piece := range strings.Split(raw, ",") {
		piece = strings.TrimSpace(piece)

		v, ok := b.convert(f, attr, piece, line)
		if !ok {
			continue
		}

		inst.Append(f, v)
		b.registerID(inst, f, piece)
	}
}

func (b *builder) convert(f *metamodel.Feature, attr, raw string, line int) (any, bool) {
	v, err := f.DataType.FromString(raw)
	if err != nil {
		b.diags.AddWarning(diagnostic.CodeInvalidValue,
			fmt.Sprintf("%s in the value of %s", errorMessage(err), attr), line)

		return nil, false
	}

	return v, true
}

func (b *builder) registerID(inst *model.Instance, f *metamodel.Feature, raw string) {
	if f.IsNameLike() {
		b.ids.register(raw, inst)
	}
}

func without(features []*metamodel.Feature, f *metamodel.Feature) []*metamodel.Feature {
	for i, candidate := range features {
		if candidate == f {
			return append(features[:i], features[i+1:]...)
		}
	}

	return features
}

func errorMessage(err error) string {
	var eb *errbuilder.ErrBuilder
	if errors.As(err, &eb) && strings.TrimSpace(eb.Msg) != "" {
		return eb.Msg
	}

	return err.Error()
}
