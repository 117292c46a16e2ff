package ignore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIgnoreMatch(t *testing.T) {
	dir := t.TempDir()
	ig := filepath.Join(dir, ".maskpiiignore")
	content := "node_modules/\n*.pem\n# comment\n\nfixtures/**/*.csv\ncustomers.txt\n"
	if err := os.WriteFile(ig, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(ig)
	if err != nil {
		t.Fatal(err)
	}
	cases := map[string]bool{
		"node_modules/pkg/index.js":  true,
		"web/node_modules/a.js":      true,
		"certs/key.pem":              true,
		"customers.txt":              true,
		"data/customers.txt":         true,
		"fixtures/2024/contacts.csv": true,
		"other/contacts.csv":         false,
		"src/app.go":                 false,
	}
	for p, want := range cases {
		if got := m.Match(p); got != want {
			t.Fatalf("Match(%q)=%v want %v", p, got, want)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if m.Match("anything.txt") {
		t.Fatal("empty matcher should match nothing")
	}
}
