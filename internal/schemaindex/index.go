package schemaindex

import (
	"flexmap/internal/match"
	"flexmap/internal/metamodel"
)

type lookupKey struct {
	name      string
	threshold int
}

type lookupResult struct {
	classifier *metamodel.Classifier
	found      bool
}

// Index caches schema queries over a registry.
type Index struct {
	registry *metamodel.Registry

	concrete  []*metamodel.Classifier
	subtypes  map[*metamodel.Classifier][]*metamodel.Classifier
	unions    map[*metamodel.Classifier][]*metamodel.Classifier
	topLevel  map[lookupKey]lookupResult
	populated bool
}

// New creates an index over reg.
func New(reg *metamodel.Registry) *Index {
	idx := &Index{registry: reg}
	idx.Reset()

	return idx
}

// Registry returns the registry the index reads from.
func (idx *Index) Registry() *metamodel.Registry {
	return idx.registry
}

// Reset drops every cached answer.
func (idx *Index) Reset() {
	idx.concrete = nil
	idx.populated = false
	idx.subtypes = make(map[*metamodel.Classifier][]*metamodel.Classifier)
	idx.unions = make(map[*metamodel.Classifier][]*metamodel.Classifier)
	idx.topLevel = make(map[lookupKey]lookupResult)
}

// ConcreteClassifiers returns every non-abstract classifier of the registry,
// in registration order and then declaration order.
func (idx *Index) ConcreteClassifiers() []*metamodel.Classifier {
	if !idx.populated {
		idx.concrete = idx.registry.ConcreteClassifiers()
		idx.populated = true
	}

	return idx.concrete
}

// Subtypes returns the concrete classifiers assignable to c, c included when
// concrete, in the order of ConcreteClassifiers.
func (idx *Index) Subtypes(c *metamodel.Classifier) []*metamodel.Classifier {
	if cached, ok := idx.subtypes[c]; ok {
		return cached
	}

	var result []*metamodel.Classifier

	for _, candidate := range idx.ConcreteClassifiers() {
		if c.IsAssignableFrom(candidate) {
			result = append(result, candidate)
		}
	}

	idx.subtypes[c] = result

	return result
}

// CandidateFeatures returns the features an attribute may target: changeable
// attributes and changeable non-containment references. The slice is fresh and
// may be consumed by the caller.
func (idx *Index) CandidateFeatures(c *metamodel.Classifier) []*metamodel.Feature {
	var result []*metamodel.Feature

	for _, f := range c.AllFeatures() {
		if f.Changeable && !f.IsContainment() {
			result = append(result, f)
		}
	}

	return result
}

// Attributes returns the attribute features of c.
func (idx *Index) Attributes(c *metamodel.Classifier) []*metamodel.Feature {
	var result []*metamodel.Feature

	for _, f := range c.AllFeatures() {
		if f.IsAttribute() {
			result = append(result, f)
		}
	}

	return result
}

// Containments returns the containment references of c.
func (idx *Index) Containments(c *metamodel.Classifier) []*metamodel.Feature {
	var result []*metamodel.Feature

	for _, f := range c.AllFeatures() {
		if f.IsContainment() {
			result = append(result, f)
		}
	}

	return result
}

// ContainmentCandidates returns the union of the subtype sets of every
// containment reference of c, first-seen order, without duplicates.
func (idx *Index) ContainmentCandidates(c *metamodel.Classifier) []*metamodel.Classifier {
	if cached, ok := idx.unions[c]; ok {
		return cached
	}

	var result []*metamodel.Classifier

	seen := map[*metamodel.Classifier]bool{}

	for _, f := range idx.Containments(c) {
		for _, s := range idx.Subtypes(f.Target) {
			if !seen[s] {
				seen[s] = true
				result = append(result, s)
			}
		}
	}

	idx.unions[c] = result

	return result
}

// ContainmentFor returns the first containment reference of c whose subtype set
// holds target.
func (idx *Index) ContainmentFor(c, target *metamodel.Classifier) (*metamodel.Feature, bool) {
	for _, f := range idx.Containments(c) {
		for _, s := range idx.Subtypes(f.Target) {
			if s == target {
				return f, true
			}
		}
	}

	return nil, false
}

// TopLevel resolves a root element name against all concrete classifiers.
// Answers, misses included, are cached per name and threshold.
func (idx *Index) TopLevel(m match.Matcher, name string) (*metamodel.Classifier, bool) {
	key := lookupKey{name: name, threshold: m.Threshold}
	if r, ok := idx.topLevel[key]; ok {
		return r.classifier, r.found
	}

	c, found := match.Find(m, name, idx.ConcreteClassifiers())
	idx.topLevel[key] = lookupResult{classifier: c, found: found}

	return c, found
}
