package exercise

import "strings"

// Range is a half-open character offset range into a passage.
type Range struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// FindQuoteRange locates the first occurrence of quote within passage and
// returns its character offsets for highlight rendering. A quote that does
// not appear verbatim yields (nil, false): the caller shows the quote as
// plain text instead of highlighting.
func FindQuoteRange(passage, quote string) (*Range, bool) {
	if passage == "" || quote == "" {
		return nil, false
	}
	idx := strings.Index(passage, quote)
	if idx == -1 {
		return nil, false
	}
	return &Range{Start: idx, End: idx + len(quote)}, true
}
