package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateTagLabel(t *testing.T) {
	tests := []struct {
		name  string
		label string
		valid bool
	}{
		{"simple", "sale", true},
		{"hierarchical", "sale/summer", true},
		{"hyphenated", "staff-pick", true},
		{"empty", "", false},
		{"leading whitespace", " sale", false},
		{"trailing whitespace", "sale ", false},
		{"newline", "sa\nle", false},
		{"tab", "sa\tle", false},
		{"max length", strings.Repeat("a", 200), true},
		{"too long", strings.Repeat("a", 201), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := ValidateTagLabel(tt.label)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}
