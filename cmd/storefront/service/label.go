package service

import (
	"strings"
)

const maxLabelLength = 200

// ValidateTagLabel validates an operator-provided tag label.
//
// Returns error message if invalid, empty string if valid.
func ValidateTagLabel(label string) string {
	if label == "" {
		return "tag label cannot be empty"
	}

	if len(label) > maxLabelLength {
		return "tag label too long (max 200 characters)"
	}

	if strings.TrimSpace(label) != label {
		return "tag label cannot have leading or trailing whitespace"
	}

	// Labels can contain "/" for hierarchical organization
	// Examples: "sale/summer", "staff-pick"
	for _, ch := range label {
		if ch == '\n' || ch == '\t' {
			return "tag label cannot contain control characters"
		}
	}

	return "" // Valid
}
