package load

import (
	"flexmap/internal/metamodel"
	"flexmap/internal/model"
)

// idIndex maps raw identifier strings to the instances registered under them,
// in registration order. It lives for one load.
type idIndex struct {
	entries map[string][]*model.Instance
}

func newIDIndex() *idIndex {
	return &idIndex{entries: make(map[string][]*model.Instance)}
}

func (x *idIndex) register(id string, inst *model.Instance) {
	x.entries[id] = append(x.entries[id], inst)
}

// first returns the earliest instance registered under id that target accepts.
func (x *idIndex) first(id string, target *metamodel.Classifier) (*model.Instance, bool) {
	for _, inst := range x.entries[id] {
		if target.IsAssignableFrom(inst.Classifier) {
			return inst, true
		}
	}

	return nil, false
}

func (x *idIndex) len() int {
	return len(x.entries)
}
