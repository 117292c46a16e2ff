package masking

import (
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name     string
	input    string
	expected string
}

func runCases(t *testing.T, m Masker, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, m.Process(tc.input))
		})
	}
}

func TestEmailMasking(t *testing.T) {
	runCases(t, New().MaskEmails(), []testCase{
		{name: "basic", input: "alice@example.com", expected: "a****@example.com"},
		{name: "single char local", input: "a@b.com", expected: "*@b.com"},
		{name: "two char local", input: "ab@example.com", expected: "a*@example.com"},
		{name: "symbols in local", input: "a.b+c_d@example.co.jp", expected: "a******@example.co.jp"},
		{name: "subdomains kept", input: "first.last+tag@sub.domain.com", expected: "f*************@sub.domain.com"},
		{name: "sentence period", input: "Contact: alice@example.com.", expected: "Contact: a****@example.com."},
		{name: "two addresses", input: "alice@example.com and bob@example.org", expected: "a****@example.com and b**@example.org"},
		{name: "trailing hyphen dropped", input: "a@example.com-", expected: "*@example.com-"},
		{name: "exclamation", input: "mail john.doe@mail.example.co.uk!", expected: "mail j*******@mail.example.co.uk!"},
		{name: "non-ascii neighbours", input: "ユーザーalice@example.comです", expected: "ユーザーa****@example.comです"},
	})
}

func TestEmailNonMatches(t *testing.T) {
	m := New().MaskEmails()
	for _, in := range []string{
		"no at sign here",
		"alice@example",
		"alice@localhost",
		"alice@@example.com",
		"@example.com",
		"alice@",
		"user@-example.com",
		"user@example.c0m",
		"user@example.c",
		"user@.example.com",
		"",
	} {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, in, m.Process(in))
		})
	}
}

func TestEmailConsumedBytesAreNotReused(t *testing.T) {
	m := New().MaskEmails()
	assert.Equal(t, "*@b.com@c.com", m.Process("a@b.com@c.com"))
	assert.Equal(t, "a@*@c.com", m.Process("a@b@c.com"))
}

func TestPhoneMasking(t *testing.T) {
	runCases(t, New().MaskPhones(), []testCase{
		{name: "dashed", input: "090-1234-5678", expected: "***-****-5678"},
		{name: "parenthesised area code", input: "Call (555) 123-4567 now", expected: "Call (***) ***-4567 now"},
		{name: "international", input: "Intl: +81 3 1234 5678", expected: "Intl: +** * **** 5678"},
		{name: "plus and parens", input: "+1 (800) 123-4567", expected: "+* (***) ***-4567"},
		{name: "five digits", input: "12345", expected: "*2345"},
		{name: "six digits with dash", input: "12-3456", expected: "**-3456"},
		{name: "trailing text", input: "Tel: 090-1234-5678 ext. 99", expected: "Tel: ***-****-5678 ext. 99"},
		{name: "two numbers", input: "Numbers: 111-2222 and 333-4444", expected: "Numbers: ***-2222 and ***-4444"},
		{name: "unbalanced parens", input: "(12) 345 678", expected: "(**) **5 678"},
		{name: "short run skipped whole", input: "(12)x34567", expected: "(12)x*4567"},
	})
}

func TestPhoneNonMatches(t *testing.T) {
	m := New().MaskPhones()
	for _, in := range []string{"1234", "+", "abcdef", "year 2024, id 1234", "( ) - +", ""} {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, in, m.Process(in))
		})
	}
}

func TestCombinedMasking(t *testing.T) {
	runCases(t, New().MaskEmails().MaskPhones(), []testCase{
		{name: "sentence", input: "Contact: alice@example.com or 090-1234-5678.", expected: "Contact: a****@example.com or ***-****-5678."},
		{name: "intl", input: "Email bob@example.org, phone +1 (800) 123-4567", expected: "Email b**@example.org, phone +* (***) ***-4567"},
		{name: "japanese", input: "連絡先: alice@example.com と 090-1234-5678", expected: "連絡先: a****@example.com と ***-****-5678"},
	})
}

func TestCustomMaskCharacter(t *testing.T) {
	assert.Equal(t, "a####@example.com", New().MaskEmails().WithMaskChar('#').Process("alice@example.com"))
	assert.Equal(t, "###-####-5678", New().MaskPhones().WithMaskChar('#').Process("090-1234-5678"))
	assert.Equal(t, "Contact: a####@example.com or ###-####-5678.",
		New().MaskEmails().MaskPhones().WithMaskChar('#').Process("Contact: alice@example.com or 090-1234-5678."))

	wide := New().MaskEmails().MaskPhones().WithMaskChar('●')
	in := "alice@example.com 090-1234-5678"
	out := wide.Process(in)
	assert.Equal(t, "a●●●●@example.com ●●●-●●●●-5678", out)
	assert.Equal(t, utf8.RuneCountInString(in), utf8.RuneCountInString(out))
}

func TestWithMaskCharZeroRestoresDefault(t *testing.T) {
	m := New().MaskEmails().WithMaskChar('#').WithMaskChar(0)
	assert.Equal(t, '*', m.MaskChar())
	assert.Equal(t, "a****@example.com", m.Process("alice@example.com"))
}

func TestMaskCharIsUsedLiterally(t *testing.T) {
	// A digit mask char is accepted; the result is simply what it is.
	m := New().MaskPhones().WithMaskChar('0')
	assert.Equal(t, "000-0000-5678", m.Process("090-1234-5678"))
}

func TestConfigurationMatrix(t *testing.T) {
	input := "alice@example.com 090-1234-5678"
	assert.Equal(t, input, New().Process(input))
	assert.Equal(t, input, Masker{}.Process(input))
	assert.Equal(t, "a****@example.com 090-1234-5678", New().MaskEmails().Process(input))
	assert.Equal(t, "alice@example.com ***-****-5678", New().MaskPhones().Process(input))
	assert.Equal(t, "a****@example.com ***-****-5678", New().MaskEmails().MaskPhones().Process(input))
}

func TestBuilderReturnsCopies(t *testing.T) {
	base := New()
	withEmail := base.MaskEmails()
	assert.False(t, base.EmailsEnabled())
	assert.True(t, withEmail.EmailsEnabled())
	assert.False(t, withEmail.PhonesEnabled())

	hashed := withEmail.WithMaskChar('#')
	assert.Equal(t, '*', withEmail.MaskChar())
	assert.Equal(t, '#', hashed.MaskChar())
}

func TestEnableAndEnabled(t *testing.T) {
	m := New().Enable(CategoryPhone).Enable(CategoryEmail).Enable(Category("card"))
	assert.Equal(t, []Category{CategoryEmail, CategoryPhone}, m.Enabled())
	assert.Equal(t, "email,phone|*", m.Profile())
	assert.Equal(t, "|#", New().WithMaskChar('#').Profile())
}

func TestParseCategories(t *testing.T) {
	cats, err := ParseCategories(" Email, phone ,email,")
	require.NoError(t, err)
	assert.Equal(t, []Category{CategoryEmail, CategoryPhone}, cats)

	cats, err = ParseCategories("")
	require.NoError(t, err)
	assert.Empty(t, cats)

	_, err = ParseCategories("email,card")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownCategory)
	assert.Contains(t, err.Error(), "card")
}

func TestRedactReportsRuneOffsets(t *testing.T) {
	m := New().MaskEmails().MaskPhones()
	in := "Contact: alice@example.com or 090-1234-5678."
	res := m.Redact(in)
	require.Len(t, res.Matches, 2)
	assert.Equal(t, m.Process(in), res.Text)

	assert.Equal(t, Match{Category: CategoryEmail, Start: 9, End: 26, Masked: "a****@example.com"}, res.Matches[0])
	assert.Equal(t, Match{Category: CategoryPhone, Start: 30, End: 43, Masked: "***-****-5678"}, res.Matches[1])
	assert.Equal(t, map[Category]int{CategoryEmail: 1, CategoryPhone: 1}, res.Counts())
}

func TestRedactOffsetsIndexInputAndOutput(t *testing.T) {
	m := New().MaskEmails().MaskPhones().WithMaskChar('●')
	in := "連絡先: alice@example.com と 090-1234-5678"
	res := m.Redact(in)
	require.Len(t, res.Matches, 2)

	inRunes, outRunes := []rune(in), []rune(res.Text)
	require.Equal(t, len(inRunes), len(outRunes))
	assert.Equal(t, "alice@example.com", string(inRunes[res.Matches[0].Start:res.Matches[0].End]))
	assert.Equal(t, "090-1234-5678", string(inRunes[res.Matches[1].Start:res.Matches[1].End]))
	for _, mt := range res.Matches {
		assert.Equal(t, mt.Masked, string(outRunes[mt.Start:mt.End]))
	}
}

func TestRedactWithoutMatches(t *testing.T) {
	res := New().MaskEmails().MaskPhones().Redact("nothing to see")
	assert.Equal(t, "nothing to see", res.Text)
	assert.Empty(t, res.Matches)
}

func TestMaskedOutputIsStable(t *testing.T) {
	m := New().MaskEmails().MaskPhones()
	for _, in := range []string{
		"Contact: alice@example.com or 090-1234-5678.",
		"Email bob@example.org, phone +1 (800) 123-4567",
		"a@b.com, first.last+tag@sub.domain.com, (12) 345 678",
	} {
		once := m.Process(in)
		assert.Equal(t, once, m.Process(once), "input %q", in)
	}
}

func TestPreservationProperties(t *testing.T) {
	m := New().MaskEmails().MaskPhones()
	in := "reach first.last@sub.example.org or +1 (800) 123-4567 today"
	res := m.Redact(in)
	require.Len(t, res.Matches, 2)

	email := res.Matches[0]
	assert.Equal(t, []rune(in)[email.Start], []rune(email.Masked)[0])

	phone := res.Matches[1]
	orig := string([]rune(in)[phone.Start:phone.End])
	assert.Equal(t, lastDigits(orig, 4), lastDigits(phone.Masked, 4))
	for i := 0; i < len(orig); i++ {
		if !isDigit(orig[i]) {
			assert.Equal(t, orig[i], phone.Masked[i], "separator at %d", i)
		}
	}
}

func lastDigits(s string, n int) string {
	var digits []byte
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			digits = append(digits, s[i])
		}
	}
	if len(digits) < n {
		return string(digits)
	}
	return string(digits[len(digits)-n:])
}

func TestSharedMaskerConcurrentUse(t *testing.T) {
	m := New().MaskEmails().MaskPhones()
	in := strings.Repeat("Contact: alice@example.com or 090-1234-5678.\n", 50)
	want := m.Process(in)

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := m.Process(in); got != want {
				errs <- got
			}
		}()
	}
	wg.Wait()
	close(errs)
	for got := range errs {
		t.Fatalf("concurrent result differs: %q", got)
	}
}

func FuzzProcessKeepsRuneCount(f *testing.F) {
	for _, seed := range []string{
		"alice@example.com",
		"Contact: alice@example.com or 090-1234-5678.",
		"連絡先: a@b.co と +81 3 1234 5678",
		"a@b.com@c.com (12)x34567",
	} {
		f.Add(seed)
	}
	m := New().MaskEmails().MaskPhones().WithMaskChar('●')
	f.Fuzz(func(t *testing.T, in string) {
		if !utf8.ValidString(in) {
			t.Skip()
		}
		out := m.Process(in)
		if utf8.RuneCountInString(in) != utf8.RuneCountInString(out) {
			t.Fatalf("rune count changed: %q -> %q", in, out)
		}
		if New().Process(in) != in {
			t.Fatalf("passthrough changed input %q", in)
		}
	})
}
