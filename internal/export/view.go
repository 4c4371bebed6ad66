package export

import (
	"flexmap/internal/model"
)

// LineFunc reports the source line of an instance.
type LineFunc func(*model.Instance) (int, bool)

// View is a plain, ordered picture of an instance.
type View struct {
	Class  string
	Label  string
	Line   int
	Values []Value
	Slots  []Slot
}

// Value holds the rendered values of an attribute or non-containment reference.
type Value struct {
	Feature string
	Many    bool
	Items   []string
}

// Slot holds the instances of one containment reference.
type Slot struct {
	Feature string
	Many    bool
	Items   []View
}

// Build renders roots and their contents. lines may be nil.
func Build(roots []*model.Instance, lines LineFunc) []View {
	views := make([]View, 0, len(roots))

	for _, inst := range roots {
		views = append(views, build(inst, lines))
	}

	return views
}

func build(inst *model.Instance, lines LineFunc) View {
	v := View{Class: inst.Classifier.Name, Label: inst.Label()}

	if lines != nil {
		v.Line, _ = lines(inst)
	}

	for _, f := range inst.Classifier.AllFeatures() {
		if !inst.IsSet(f) {
			continue
		}

		values := inst.List(f)

		if f.IsContainment() {
			slot := Slot{Feature: f.Name, Many: f.Many}
			for _, item := range values {
				if child, ok := item.(*model.Instance); ok {
					slot.Items = append(slot.Items, build(child, lines))
				}
			}

			v.Slots = append(v.Slots, slot)

			continue
		}

		value := Value{Feature: f.Name, Many: f.Many}
		for _, item := range values {
			if ref, ok := item.(*model.Instance); ok {
				value.Items = append(value.Items, ref.String())
			} else {
				value.Items = append(value.Items, f.DataType.ToString(item))
			}
		}

		v.Values = append(v.Values, value)
	}

	return v
}
