package match

import (
	"testing"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Option keys in their usual spellings
		{"fuzzy-matching-threshold", "fuzzymatchingthreshold"},
		{"fuzzyMatchingThreshold", "fuzzymatchingthreshold"},
		{"fuzzy_matching_threshold", "fuzzymatchingthreshold"},
		{"FUZZY.MATCHING.THRESHOLD", "fuzzymatchingthreshold"},
		{"orphans as top level", "orphansastoplevel"},

		// Edge cases
		{"", ""},
		{"a", "a"},
		{"A", "a"},
		{"--", ""},
		{"Übung", "übung"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeIdent(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeIdent(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}
