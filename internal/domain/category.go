package domain

import (
	"strings"
	"time"
)

// Category is a named ticket classification
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// categoryNames is the fixed set in declared order. Matching scans in this order.
var categoryNames = []string{
	"Login Help",
	"Connection",
	"App Crash",
	"Printing",
	"Setup Help",
	"Audio Issue",
	"Bug Report",
	"Slow Speed",
	"Upload Fail",
	"Display Bug",
}

// CategoryNames returns a copy of the fixed category labels in declared order
func CategoryNames() []string {
	names := make([]string, len(categoryNames))
	copy(names, categoryNames)
	return names
}

// IsKnownCategory reports whether name is exactly one of the fixed labels
func IsKnownCategory(name string) bool {
	for _, c := range categoryNames {
		if c == name {
			return true
		}
	}
	return false
}

// MatchCategory returns the first declared category that equals, contains, or is
// contained in input, compared case-insensitively. Input is trimmed first.
func MatchCategory(input string) (string, bool) {
	in := strings.ToLower(strings.TrimSpace(input))
	for _, c := range categoryNames {
		cat := strings.ToLower(c)
		if cat == in || strings.Contains(cat, in) || strings.Contains(in, cat) {
			return c, true
		}
	}
	return "", false
}
