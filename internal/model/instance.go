package model

import (
	"strings"

	"flexmap/internal/common"
	"flexmap/internal/metamodel"
)

// Instance is an object of the loaded graph: a classifier plus feature values.
// Single-valued features hold a scalar or *Instance, many-valued ones []any.
type Instance struct {
	Classifier *metamodel.Classifier

	values    map[metamodel.FeatureID]any
	container *Instance
	slot      *metamodel.Feature
}

// New creates an empty instance of c.
func New(c *metamodel.Classifier) *Instance {
	return &Instance{
		Classifier: c,
		values:     make(map[metamodel.FeatureID]any),
	}
}

// Get returns the value of f and whether it was set.
func (i *Instance) Get(f *metamodel.Feature) (any, bool) {
	v, ok := i.values[f.ID()]

	return v, ok
}

// IsSet reports whether f has a value.
func (i *Instance) IsSet(f *metamodel.Feature) bool {
	_, ok := i.values[f.ID()]

	return ok
}

// List returns the values of a many-valued feature, or the single value wrapped in
// a slice. The result is a copy.
func (i *Instance) List(f *metamodel.Feature) []any {
	v, ok := i.values[f.ID()]
	if !ok {
		return nil
	}

	if list, ok := v.([]any); ok {
		return append([]any(nil), list...)
	}

	return []any{v}
}

// Set assigns the value of a single-valued feature. Containment values are
// detached from their previous container.
func (i *Instance) Set(f *metamodel.Feature, v any) {
	if old, ok := i.values[f.ID()].(*Instance); ok && f.IsContainment() && old != v {
		old.container, old.slot = nil, nil
	}

	i.adopt(f, v)
	i.values[f.ID()] = v
}

// Append adds a value to a many-valued feature.
func (i *Instance) Append(f *metamodel.Feature, v any) {
	i.adopt(f, v)

	list, _ := i.values[f.ID()].([]any)
	i.values[f.ID()] = append(list, v)
}

func (i *Instance) adopt(f *metamodel.Feature, v any) {
	if !f.IsContainment() {
		return
	}

	child, ok := v.(*Instance)
	if !ok || child == nil {
		return
	}

	if child.container != nil {
		child.container.remove(child.slot, child)
	}

	child.container, child.slot = i, f
}

func (i *Instance) remove(f *metamodel.Feature, child *Instance) {
	switch v := i.values[f.ID()].(type) {
	case *Instance:
		if v == child {
			delete(i.values, f.ID())
		}
	case []any:
		for k, item := range v {
			if item == child {
				i.values[f.ID()] = append(v[:k:k], v[k+1:]...)
				break
			}
		}
	}
}

// Container returns the containing instance and the containment feature holding i.
func (i *Instance) Container() (*Instance, *metamodel.Feature) {
	return i.container, i.slot
}

// Contents returns the directly contained instances, in feature order and then
// value order.
func (i *Instance) Contents() []*Instance {
	var result []*Instance

	for _, f := range i.Classifier.AllFeatures() {
		if !f.IsContainment() {
			continue
		}

		for _, v := range i.List(f) {
			if child, ok := v.(*Instance); ok {
				result = append(result, child)
			}
		}
	}

	return result
}

// Label returns the identifying value of i: its identifier attribute, or an
// attribute called "name". Empty when neither is set.
func (i *Instance) Label() string {
	var candidates []*metamodel.Feature

	if id, ok := i.Classifier.IdentifierFeature(); ok {
		candidates = append(candidates, id)
	}

	for _, f := range i.Classifier.AllFeatures() {
		if f.IsAttribute() && strings.EqualFold(f.Name, "name") {
			candidates = append(candidates, f)
		}
	}

	for _, f := range candidates {
		if v, ok := common.First(i.List(f)); ok {
			return f.DataType.ToString(v)
		}
	}

	return ""
}

// String returns "Class" or "Class(label)".
func (i *Instance) String() string {
	if l := i.Label(); l != "" {
		return i.Classifier.Name + "(" + l + ")"
	}

	return i.Classifier.Name
}
