package masking

import (
	"strings"
	"unicode/utf8"
)

// rewrite copies text to a new buffer, replacing each span with its masked
// form. Spans must be ordered and non-overlapping. When collect is set the
// replacements are also reported as Matches with rune offsets.
func rewrite(text string, spans []Span, maskChar rune, collect bool) (string, []Match) {
	if len(spans) == 0 {
		return text, nil
	}
	var out strings.Builder
	out.Grow(len(text) + len(spans)*utf8.UTFMax)

	var matches []Match
	if collect {
		matches = make([]Match, 0, len(spans))
	}
	last, runePos := 0, 0
	for _, sp := range spans {
		out.WriteString(text[last:sp.Start])
		mark := out.Len()
		switch sp.Category {
		case CategoryEmail:
			maskLocal(&out, text[sp.Start:sp.Pivot], maskChar)
			out.WriteString(text[sp.Pivot:sp.End])
		case CategoryPhone:
			maskPhone(&out, text[sp.Start:sp.End], maskChar)
		}
		if collect {
			runePos += utf8.RuneCountInString(text[last:sp.Start])
			n := utf8.RuneCountInString(text[sp.Start:sp.End])
			matches = append(matches, Match{
				Category: sp.Category,
				Start:    runePos,
				End:      runePos + n,
				Masked:   out.String()[mark:],
			})
			runePos += n
		}
		last = sp.End
	}
	out.WriteString(text[last:])
	return out.String(), matches
}
