package metamodel

import "strings"

//go:generate go tool stringer -type=ValueKind -trimprefix=ValueKind

// ValueKind is the primitive representation of an attribute value.
type ValueKind int

const (
	ValueKindString ValueKind = iota + 1
	ValueKindInt
	ValueKindFloat
	ValueKindBool
	ValueKindEnum
	ValueKindDuration
)

var valueKindAliases = map[string]ValueKind{
	"string":   ValueKindString,
	"str":      ValueKindString,
	"int":      ValueKindInt,
	"integer":  ValueKindInt,
	"float":    ValueKindFloat,
	"double":   ValueKindFloat,
	"bool":     ValueKindBool,
	"boolean":  ValueKindBool,
	"duration": ValueKindDuration,
}

// ParseValueKind maps a schema type keyword to its ValueKind.
// Enums are declared per package and are never returned here.
func ParseValueKind(s string) (ValueKind, bool) {
	k, ok := valueKindAliases[strings.ToLower(strings.TrimSpace(s))]

	return k, ok
}

// IsNumber reports whether values of this kind are numeric.
func (i ValueKind) IsNumber() bool {
	return i == ValueKindInt || i == ValueKindFloat
}
