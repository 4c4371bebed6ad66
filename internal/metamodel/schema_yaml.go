package metamodel

// SchemaFile is the root of a YAML schema document.
type SchemaFile struct {
	NsURI   string      `yaml:"nsuri"`
	Name    string      `yaml:"name"`
	Enums   []EnumSpec  `yaml:"enums,omitempty"`
	Classes []ClassSpec `yaml:"classes"`
}

// EnumSpec declares an enumeration data type.
type EnumSpec struct {
	Name     string   `yaml:"name"`
	Literals []string `yaml:"literals"`
}

// ClassSpec declares a classifier.
type ClassSpec struct {
	Name       string          `yaml:"name"`
	Abstract   bool            `yaml:"abstract,omitempty"`
	SuperTypes []string        `yaml:"supertypes,omitempty"`
	Attributes []AttributeSpec `yaml:"attributes,omitempty"`
	References []ReferenceSpec `yaml:"references,omitempty"`
}

// AttributeSpec declares an attribute feature.
// Type is a built-in keyword (string, int, float, bool, duration) or an enum of the package.
type AttributeSpec struct {
	Name       string `yaml:"name"`
	Type       string `yaml:"type"`
	ID         bool   `yaml:"id,omitempty"`
	Many       bool   `yaml:"many,omitempty"`
	Changeable *bool  `yaml:"changeable,omitempty"` // defaults to true
}

// ReferenceSpec declares a reference feature.
// Type names a class of the same package or "<nsuri>#<Name>" of a registered package.
type ReferenceSpec struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Many        bool   `yaml:"many,omitempty"`
	Containment bool   `yaml:"containment,omitempty"`
	Changeable  *bool  `yaml:"changeable,omitempty"` // defaults to true
}

func changeable(b *bool) bool {
	return b == nil || *b
}
