package load

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"flexmap/internal/match"
)

// Recognized configuration keys. Keys compare after match.NormalizeIdent, so
// "orphansAsTopLevel" and "orphans_as_top_level" name the same option.
const (
	OptionFuzzyContainmentMatching = "fuzzy-containment-matching"
	OptionOrphansAsTopLevel        = "orphans-as-top-level"
	OptionFuzzyMatchingThreshold   = "fuzzy-matching-threshold"
)

// Config holds the options of a load. Directives in the document override it.
type Config struct {
	// FuzzyContainmentMatching allows approximate names for containment slots.
	FuzzyContainmentMatching bool
	// OrphansAsTopLevel resolves children of unmapped elements as new roots.
	OrphansAsTopLevel bool
	// FuzzyMatchingThreshold is the score a fuzzy match must strictly exceed.
	FuzzyMatchingThreshold int
}

// DefaultConfig returns the default load options.
func DefaultConfig() Config {
	return Config{
		FuzzyContainmentMatching: true,
		OrphansAsTopLevel:        false,
		FuzzyMatchingThreshold:   match.DefaultThreshold,
	}
}

// Apply sets the option named key from its textual value.
func (c *Config) Apply(key, value string) error {
	value = strings.TrimSpace(value)

	switch match.NormalizeIdent(key) {
	case match.NormalizeIdent(OptionFuzzyContainmentMatching):
		b, err := parseBool(value)
		if err != nil {
			return err
		}

		c.FuzzyContainmentMatching = b
	case match.NormalizeIdent(OptionOrphansAsTopLevel):
		b, err := parseBool(value)
		if err != nil {
			return err
		}

		c.OrphansAsTopLevel = b
	case match.NormalizeIdent(OptionFuzzyMatchingThreshold):
		n, err := strconv.Atoi(value)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid integer %q", value)).
				WithCause(err)
		}

		c.FuzzyMatchingThreshold = n
	default:
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("unknown option")
	}

	return nil
}

func parseBool(value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid boolean %q", value)).
			WithCause(err)
	}

	return b, nil
}
