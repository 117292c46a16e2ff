package masking

import "strings"

type emailScanner struct{}

func (emailScanner) Category() Category { return CategoryEmail }

func (emailScanner) AppliesTo(text string) bool {
	return strings.IndexByte(text, '@') >= 0
}

// Find locates local-part@domain spans in document order. Each '@' anchors a
// backward walk over local-part bytes and a forward walk over domain bytes;
// the domain is then shrunk from the right until it validates.
func (emailScanner) Find(text string) []Span {
	var spans []Span
	floor := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '@' {
			continue
		}
		start := i
		for start > floor && isLocalByte(text[start-1]) {
			start--
		}
		if start == i {
			continue
		}
		runEnd := i + 1
		for runEnd < len(text) && isDomainByte(text[runEnd]) {
			runEnd++
		}
		end := longestDomain(text, i+1, runEnd)
		if end < 0 {
			continue
		}
		spans = append(spans, Span{Category: CategoryEmail, Start: start, End: end, Pivot: i})
		floor = end
		i = end - 1
	}
	return spans
}

// longestDomain returns the largest end in (start, runEnd] for which
// text[start:end] is a valid domain, or -1 when no prefix validates.
func longestDomain(text string, start, runEnd int) int {
	for end := runEnd; end > start; end-- {
		// A valid domain always ends in an alphabetic TLD byte.
		if !isAlpha(text[end-1]) {
			continue
		}
		if validDomain(text[start:end]) {
			return end
		}
	}
	return -1
}

// validDomain reports whether d has at least two dot-separated labels, no
// empty label, no label starting or ending with '-', only alphanumerics and
// '-' inside labels, and an alphabetic TLD of two or more characters.
func validDomain(d string) bool {
	if d == "" || d[0] == '.' || d[len(d)-1] == '.' {
		return false
	}
	labels := strings.Split(d, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if label == "" || label[0] == '-' || label[len(label)-1] == '-' {
			return false
		}
		for i := 0; i < len(label); i++ {
			if !isAlphaNumeric(label[i]) && label[i] != '-' {
				return false
			}
		}
	}
	tld := labels[len(labels)-1]
	if len(tld) < 2 {
		return false
	}
	for i := 0; i < len(tld); i++ {
		if !isAlpha(tld[i]) {
			return false
		}
	}
	return true
}

// maskLocal keeps the first character of local and replaces the rest with
// maskChar. A single-character local part becomes one maskChar. Local parts
// are ASCII, so byte length equals character count.
func maskLocal(out *strings.Builder, local string, maskChar rune) {
	if len(local) == 1 {
		out.WriteRune(maskChar)
		return
	}
	out.WriteByte(local[0])
	for i := 1; i < len(local); i++ {
		out.WriteRune(maskChar)
	}
}
