package masking

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlphaNumeric(b byte) bool {
	return isAlpha(b) || isDigit(b)
}

// isLocalByte reports whether b may appear in an email local part.
func isLocalByte(b byte) bool {
	if isAlphaNumeric(b) {
		return true
	}
	switch b {
	case '.', '_', '%', '+', '-':
		return true
	}
	return false
}

// isDomainByte reports whether b may appear in a candidate domain run.
func isDomainByte(b byte) bool {
	return isAlphaNumeric(b) || b == '-' || b == '.'
}

func isPhoneStart(b byte) bool {
	return isDigit(b) || b == '+' || b == '('
}

func isPhoneByte(b byte) bool {
	if isDigit(b) {
		return true
	}
	switch b {
	case ' ', '-', '(', ')', '+':
		return true
	}
	return false
}
