package masking

import (
	"errors"
	"fmt"
	"strings"
)

// Category names a kind of PII the engine can mask.
type Category string

const (
	CategoryEmail Category = "email"
	CategoryPhone Category = "phone"
)

// ErrUnknownCategory is returned when a category name is not recognised.
var ErrUnknownCategory = errors.New("unknown category")

// Categories returns every supported category in pipeline order.
func Categories() []Category {
	return []Category{CategoryEmail, CategoryPhone}
}

// ParseCategories parses a comma-separated list such as "email,phone".
// Names are case-insensitive; blanks and duplicates are ignored.
func ParseCategories(s string) ([]Category, error) {
	var out []Category
	seen := map[Category]bool{}
	for _, part := range strings.Split(s, ",") {
		name := Category(strings.ToLower(strings.TrimSpace(part)))
		if name == "" || seen[name] {
			continue
		}
		switch name {
		case CategoryEmail, CategoryPhone:
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, string(name))
		}
		seen[name] = true
		out = append(out, name)
	}
	return out, nil
}

// Span is a located candidate in the text of a single pass, as a half-open
// byte range. Pivot is the offset of '@' for email spans.
type Span struct {
	Category Category
	Start    int
	End      int
	Pivot    int
}

// Match reports one masked span. Start and End count Unicode scalar values;
// since masking is one-for-one they index the same range in input and output.
// Masked is the replacement text and never contains the original value.
type Match struct {
	Category Category `json:"category"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Masked   string   `json:"masked"`
}

// Result is the output of Masker.Redact.
type Result struct {
	Text    string
	Matches []Match
}

// Counts tallies matches per category.
func (r Result) Counts() map[Category]int {
	counts := make(map[Category]int, 2)
	for _, m := range r.Matches {
		counts[m.Category]++
	}
	return counts
}

// scanner locates candidate spans for one category.
type scanner interface {
	Category() Category
	// AppliesTo is a cheap pre-check; false means Find would return nothing.
	AppliesTo(text string) bool
	Find(text string) []Span
}
