package metamodel

import (
	"strings"

	"flexmap/internal/common"
)

// ClassifierID uniquely identifies a classifier by its package namespace URI and name.
type ClassifierID struct {
	NsURI string // e.g., "http://example.org/tree"
	Name  string // e.g., "Tree"
}

// String returns a human-readable representation of the ClassifierID.
func (id ClassifierID) String() string {
	if id.NsURI == "" {
		return id.Name
	}

	return id.NsURI + "#" + id.Name
}

// FeatureID uniquely identifies a structural feature by its owning classifier and name.
type FeatureID struct {
	Owner ClassifierID
	Name  string
}

// String returns a human-readable representation of the FeatureID.
func (id FeatureID) String() string {
	return id.Owner.String() + "." + id.Name
}

// FeatureKind distinguishes attributes from references.
type FeatureKind int

const (
	FeatureAttribute FeatureKind = iota
	FeatureReference
)

// String returns a human-readable representation of the FeatureKind.
func (k FeatureKind) String() string {
	switch k {
	case FeatureAttribute:
		return "attribute"
	case FeatureReference:
		return "reference"
	default:
		return common.UnknownStr
	}
}

// Package groups the classifiers declared under one namespace URI.
type Package struct {
	NsURI       string
	Name        string
	DataTypes   []*DataType
	Classifiers []*Classifier
}

// Classifier returns the classifier declared in this package with the given name.
func (p *Package) Classifier(name string) (*Classifier, bool) {
	for _, c := range p.Classifiers {
		if c.Name == name {
			return c, true
		}
	}

	return nil, false
}

// DataType returns the data type declared in this package with the given name.
func (p *Package) DataType(name string) (*DataType, bool) {
	for _, d := range p.DataTypes {
		if d.Name == name {
			return d, true
		}
	}

	return nil, false
}

// Classifier is a schema-declared class with attributes, references and supertypes.
// Classifiers are read-only once their package is registered.
type Classifier struct {
	Package    *Package
	Name       string
	Abstract   bool
	SuperTypes []*Classifier
	Features   []*Feature // declared features only, in declaration order
}

// ID returns the identifier of the classifier.
func (c *Classifier) ID() ClassifierID {
	id := ClassifierID{Name: c.Name}
	if c.Package != nil {
		id.NsURI = c.Package.NsURI
	}

	return id
}

// Ident returns the name used when matching element tags against this classifier.
func (c *Classifier) Ident() string {
	return c.Name
}

// AllSuperTypes returns the transitive supertypes of c, nearest first, without duplicates.
// c itself is not included.
func (c *Classifier) AllSuperTypes() []*Classifier {
	var result []*Classifier

	seen := map[*Classifier]bool{c: true}
	queue := append([]*Classifier{}, c.SuperTypes...)

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		if seen[next] {
			continue
		}

		seen[next] = true
		result = append(result, next)
		queue = append(queue, next.SuperTypes...)
	}

	return result
}

// IsAssignableFrom reports whether an instance of other can be used where c is expected,
// i.e. other is c or one of its transitive subtypes.
func (c *Classifier) IsAssignableFrom(other *Classifier) bool {
	if other == nil {
		return false
	}

	if c == other {
		return true
	}

	for _, s := range other.AllSuperTypes() {
		if s == c {
			return true
		}
	}

	return false
}

// AllFeatures returns inherited features followed by the declared ones.
// Inherited features come in supertype declaration order; a feature reachable
// through several supertypes appears once.
func (c *Classifier) AllFeatures() []*Feature {
	var result []*Feature

	seen := map[*Feature]bool{}
	visiting := map[*Classifier]bool{}

	var collect func(cl *Classifier)
	collect = func(cl *Classifier) {
		if visiting[cl] {
			return
		}

		visiting[cl] = true

		for _, s := range cl.SuperTypes {
			collect(s)
		}

		for _, f := range cl.Features {
			if !seen[f] {
				seen[f] = true
				result = append(result, f)
			}
		}
	}

	collect(c)

	return result
}

// Feature returns the feature of c (declared or inherited) with the given name.
func (c *Classifier) Feature(name string) (*Feature, bool) {
	for _, f := range c.AllFeatures() {
		if f.Name == name {
			return f, true
		}
	}

	return nil, false
}

// IdentifierFeature returns the attribute flagged as identifier, if any.
func (c *Classifier) IdentifierFeature() (*Feature, bool) {
	for _, f := range c.AllFeatures() {
		if f.Kind == FeatureAttribute && f.Identifier {
			return f, true
		}
	}

	return nil, false
}

// Feature is a structural feature of a classifier: an attribute or a reference.
type Feature struct {
	Owner      *Classifier
	Name       string
	Kind       FeatureKind
	Many       bool
	Changeable bool

	// Attribute only.
	DataType   *DataType
	Identifier bool

	// Reference only.
	Target      *Classifier
	Containment bool
}

// ID returns the identifier of the feature.
func (f *Feature) ID() FeatureID {
	id := FeatureID{Name: f.Name}
	if f.Owner != nil {
		id.Owner = f.Owner.ID()
	}

	return id
}

// Ident returns the name used when matching tags and attributes against this feature.
func (f *Feature) Ident() string {
	return f.Name
}

// IsAttribute reports whether f is an attribute.
func (f *Feature) IsAttribute() bool {
	return f.Kind == FeatureAttribute
}

// IsReference reports whether f is a reference.
func (f *Feature) IsReference() bool {
	return f.Kind == FeatureReference
}

// IsContainment reports whether f is a containment reference.
func (f *Feature) IsContainment() bool {
	return f.Kind == FeatureReference && f.Containment
}

// IsNameLike reports whether values of f identify their owner: f is the
// identifier attribute or an attribute literally called "name".
func (f *Feature) IsNameLike() bool {
	return f.Kind == FeatureAttribute && (f.Identifier || strings.EqualFold(f.Name, "name"))
}
