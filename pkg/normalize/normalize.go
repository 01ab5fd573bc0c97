// Package normalize canonicalizes raw grocery product names into the
// stable keys used by the shared mapping dictionary and the unknown-item
// backlog.
package normalize

import (
	"errors"
	"strings"
)

// ErrInvalidName is returned when a name is empty after normalization.
var ErrInvalidName = errors.New("invalid item name")

// Name canonicalizes a raw product name: lowercase, path separators
// replaced with spaces, whitespace runs collapsed, trimmed. The result
// is used as a persistent-store key, so separator characters must not
// survive. Name is idempotent: Name(Name(x)) == Name(x).
func Name(raw string) (string, error) {
	s := strings.ToLower(raw)
	s = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' {
			return ' '
		}
		return r
	}, s)
	s = strings.Join(strings.Fields(s), " ")

	if s == "" {
		return "", ErrInvalidName
	}
	return s, nil
}

// PreparedFoodID derives the generated canonical id for a freeform
// prepared dish from its normalized name, e.g. "prepared_pizza_congelada".
func PreparedFoodID(normalized string) string {
	return "prepared_" + underscored(normalized)
}

// UnknownIngredientID derives the generated canonical id for an unknown
// ingredient from its normalized name.
func UnknownIngredientID(normalized string) string {
	return "unknown_" + underscored(normalized)
}

// UnknownPreparedID derives the generated canonical id for an unknown
// prepared dish from its normalized name.
func UnknownPreparedID(normalized string) string {
	return "unknown_prepared_" + underscored(normalized)
}

func underscored(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}
