package metamodel

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// DataType describes the value type of an attribute and converts raw text into it.
type DataType struct {
	Name     string
	Kind     ValueKind
	Literals []string // enum only, declaration order
}

// Built-in data types shared by every package.
var (
	StringType   = &DataType{Name: "string", Kind: ValueKindString}
	IntType      = &DataType{Name: "int", Kind: ValueKindInt}
	FloatType    = &DataType{Name: "float", Kind: ValueKindFloat}
	BoolType     = &DataType{Name: "bool", Kind: ValueKindBool}
	DurationType = &DataType{Name: "duration", Kind: ValueKindDuration}
)

// BuiltinDataType returns the shared data type for a type keyword such as "int".
func BuiltinDataType(keyword string) (*DataType, bool) {
	kind, ok := ParseValueKind(keyword)
	if !ok {
		return nil, false
	}

	switch kind {
	case ValueKindString:
		return StringType, true
	case ValueKindInt:
		return IntType, true
	case ValueKindFloat:
		return FloatType, true
	case ValueKindBool:
		return BoolType, true
	case ValueKindDuration:
		return DurationType, true
	default:
		return nil, false
	}
}

// textual booleans, in addition to what strconv.ParseBool accepts
var textualBools = map[string]bool{
	"yes": true,
	"no":  false,
	"on":  true,
	"off": false,
	"y":   true,
	"n":   false,
}

// FromString converts raw attribute text into a value of this type.
// The returned value is string, int64, float64, bool or time.Duration;
// enum values are returned as their literal string.
func (d *DataType) FromString(raw string) (any, error) {
	switch d.Kind {
	case ValueKindString:
		return raw, nil
	case ValueKindInt:
		v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, conversionError(fmt.Sprintf("For input string: %q", raw), err)
		}

		return v, nil
	case ValueKindFloat:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, conversionError(fmt.Sprintf("For input string: %q", raw), err)
		}

		return v, nil
	case ValueKindBool:
		s := strings.ToLower(strings.TrimSpace(raw))
		if v, ok := textualBools[s]; ok {
			return v, nil
		}

		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, conversionError(fmt.Sprintf("Invalid boolean %q", raw), err)
		}

		return v, nil
	case ValueKindDuration:
		v, err := time.ParseDuration(strings.TrimSpace(raw))
		if err != nil {
			return nil, conversionError(fmt.Sprintf("Invalid duration %q", raw), err)
		}

		return v, nil
	case ValueKindEnum:
		s := strings.TrimSpace(raw)
		for _, lit := range d.Literals {
			if lit == s {
				return lit, nil
			}
		}

		for _, lit := range d.Literals {
			if strings.EqualFold(lit, s) {
				return lit, nil
			}
		}

		return nil, conversionError(fmt.Sprintf("The value '%s' is not a valid enumerator of '%s'", raw, d.Name), nil)
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("unsupported value kind %s", d.Kind))
	}
}

// ToString renders a converted value back to text. Used for inspection output only.
func (d *DataType) ToString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case time.Duration:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}

func conversionError(msg string, cause error) error {
	b := errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(msg)
	if cause != nil {
		b = b.WithCause(cause)
	}

	return b
}
