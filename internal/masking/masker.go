package masking

// DefaultMaskChar is used when no mask character has been set.
const DefaultMaskChar = '*'

// Masker is an immutable masking configuration. Builder methods return a
// modified copy, so a Masker can be shared freely across goroutines. The zero
// value masks nothing and uses DefaultMaskChar.
type Masker struct {
	maskEmail bool
	maskPhone bool
	maskChar  rune
}

// New returns a Masker with every category disabled.
func New() Masker {
	return Masker{maskChar: DefaultMaskChar}
}

// MaskEmails enables email address masking.
func (m Masker) MaskEmails() Masker {
	m.maskEmail = true
	return m
}

// MaskPhones enables phone number masking.
func (m Masker) MaskPhones() Masker {
	m.maskPhone = true
	return m
}

// Enable turns on masking for c. Unknown categories are ignored.
func (m Masker) Enable(c Category) Masker {
	switch c {
	case CategoryEmail:
		return m.MaskEmails()
	case CategoryPhone:
		return m.MaskPhones()
	}
	return m
}

// WithMaskChar sets the substitution character. Any rune is used literally,
// including digits or '@'; 0 restores DefaultMaskChar.
func (m Masker) WithMaskChar(c rune) Masker {
	if c == 0 {
		c = DefaultMaskChar
	}
	m.maskChar = c
	return m
}

func (m Masker) EmailsEnabled() bool { return m.maskEmail }
func (m Masker) PhonesEnabled() bool { return m.maskPhone }

// MaskChar returns the substitution character in effect.
func (m Masker) MaskChar() rune {
	if m.maskChar == 0 {
		return DefaultMaskChar
	}
	return m.maskChar
}

// Enabled returns the active categories in pipeline order.
func (m Masker) Enabled() []Category {
	var out []Category
	for _, s := range m.scanners() {
		out = append(out, s.Category())
	}
	return out
}

// scanners returns the enabled passes. Email always runs before phone.
func (m Masker) scanners() []scanner {
	var out []scanner
	if m.maskEmail {
		out = append(out, emailScanner{})
	}
	if m.maskPhone {
		out = append(out, phoneScanner{})
	}
	return out
}

// Process returns text with every enabled category masked. It never fails;
// unmatched content, including any non-ASCII text, is copied unchanged.
func (m Masker) Process(text string) string {
	maskChar := m.MaskChar()
	for _, s := range m.scanners() {
		if !s.AppliesTo(text) {
			continue
		}
		text, _ = rewrite(text, s.Find(text), maskChar, false)
	}
	return text
}

// Redact behaves like Process and also reports each masked span. Matches are
// ordered by pass (emails first), then by position.
func (m Masker) Redact(text string) Result {
	maskChar := m.MaskChar()
	res := Result{Text: text}
	for _, s := range m.scanners() {
		if !s.AppliesTo(res.Text) {
			continue
		}
		var found []Match
		res.Text, found = rewrite(res.Text, s.Find(res.Text), maskChar, true)
		res.Matches = append(res.Matches, found...)
	}
	return res
}

// Profile is a stable description of the configuration, e.g. "email,phone|*".
// Caches use it to detect configuration changes.
func (m Masker) Profile() string {
	p := ""
	for i, c := range m.Enabled() {
		if i > 0 {
			p += ","
		}
		p += string(c)
	}
	return p + "|" + string(m.MaskChar())
}
