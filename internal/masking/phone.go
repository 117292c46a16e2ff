package masking

import "strings"

// minPhoneDigits is the smallest digit count treated as a phone number.
const minPhoneDigits = 5

// keepPhoneDigits is how many trailing digits stay visible.
const keepPhoneDigits = 4

type phoneScanner struct{}

func (phoneScanner) Category() Category { return CategoryPhone }

func (phoneScanner) AppliesTo(text string) bool {
	for i := 0; i < len(text); i++ {
		if isDigit(text[i]) {
			return true
		}
	}
	return false
}

// Find locates runs of phone-like bytes holding at least minPhoneDigits
// digits. A matching run is trimmed to end at its last digit; a short run is
// skipped as a whole.
func (phoneScanner) Find(text string) []Span {
	var spans []Span
	for i := 0; i < len(text); i++ {
		if !isPhoneStart(text[i]) {
			continue
		}
		end := i
		for end < len(text) && isPhoneByte(text[end]) {
			end++
		}
		digits, lastDigit := 0, -1
		for j := i; j < end; j++ {
			if isDigit(text[j]) {
				digits++
				lastDigit = j
			}
		}
		if digits >= minPhoneDigits {
			spans = append(spans, Span{Category: CategoryPhone, Start: i, End: lastDigit + 1})
			i = lastDigit
			continue
		}
		i = end - 1
	}
	return spans
}

// maskPhone masks every digit of candidate except the last four. Separators
// are copied verbatim.
func maskPhone(out *strings.Builder, candidate string, maskChar rune) {
	total := 0
	for i := 0; i < len(candidate); i++ {
		if isDigit(candidate[i]) {
			total++
		}
	}
	seen := 0
	for i := 0; i < len(candidate); i++ {
		b := candidate[i]
		if !isDigit(b) {
			out.WriteByte(b)
			continue
		}
		seen++
		if total > keepPhoneDigits && seen <= total-keepPhoneDigits {
			out.WriteRune(maskChar)
		} else {
			out.WriteByte(b)
		}
	}
}
