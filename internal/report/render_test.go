package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/maskpii/maskpii/internal/types"
)

func sampleFindings() []types.Finding {
	return []types.Finding{
		{Path: "b.txt", Line: 2, Column: 1, Match: "***-****-5678", Category: "phone", Severity: types.SevLow},
		{Path: "a.txt", Line: 1, Column: 8, Match: "a****@example.com", Category: "email", Severity: types.SevMed},
	}
}

func TestPrintText_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.Contains(out, "No PII found") {
		t.Fatalf("expected friendly no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Files scanned: 10") {
		t.Fatalf("expected footer with files scanned; got: %q", out)
	}
	if !strings.Contains(out, "Scan duration: 1.20s") {
		t.Fatalf("expected duration in footer; got: %q", out)
	}
}

func TestPrintText_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sampleFindings(), PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "Findings: 2") {
		t.Fatalf("expected findings header; got: %q", out)
	}
	if !strings.Contains(out, "a.txt:1:8") || !strings.Contains(out, "a****@example.com") {
		t.Fatalf("expected location and masked value; got: %q", out)
	}
	if strings.Index(out, "a.txt") > strings.Index(out, "b.txt") {
		t.Fatalf("expected findings sorted by path; got: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no escape codes with NoColor; got: %q", out)
	}
}

func TestPrintTable_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sampleFindings(), PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "SEVERITY") {
		t.Fatalf("expected table header with SEVERITY; got: %q", out)
	}
	if !strings.Contains(out, "***-****-5678") {
		t.Fatalf("expected masked phone in table; got: %q", out)
	}
	if !strings.Contains(out, "│") {
		t.Fatalf("expected table borders; got: %q", out)
	}
}

func TestPrintTable_NoFindings_ShowsFooter(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, nil, PrintOptions{Duration: 1200 * time.Millisecond, FilesScanned: 10})
	out := buf.String()
	if !strings.Contains(out, "No PII found") {
		t.Fatalf("expected friendly no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Findings: 0 (high: 0, medium: 0, low: 0)") {
		t.Fatalf("expected severity footer; got: %q", out)
	}
}

func TestPrintSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintSummary(&buf, map[string]int{"phone": 1, "email": 2}, []string{"a.txt"}, false)
	out := buf.String()
	if !strings.Contains(out, "Masked 3 value(s): email=2 phone=1") {
		t.Fatalf("unexpected summary: %q", out)
	}
	if !strings.Contains(out, "  a.txt\n") {
		t.Fatalf("expected changed file listed: %q", out)
	}

	buf.Reset()
	PrintSummary(&buf, map[string]int{"email": 1}, nil, true)
	if !strings.HasPrefix(buf.String(), "Would mask 1 value(s)") {
		t.Fatalf("unexpected dry-run summary: %q", buf.String())
	}

	buf.Reset()
	PrintSummary(&buf, nil, nil, false)
	if !strings.Contains(buf.String(), "Nothing to mask") {
		t.Fatalf("unexpected empty summary: %q", buf.String())
	}
}
