package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"

	"github.com/maskpii/maskpii/internal/types"
)

type PrintOptions struct {
	NoColor      bool
	Duration     time.Duration
	FilesScanned int
}

var (
	sevHighStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sevMedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	sevLowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	pathStyle    = lipgloss.NewStyle().Bold(true)
)

func sortFindings(findings []types.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Path != findings[j].Path {
			return findings[i].Path < findings[j].Path
		}
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Column < findings[j].Column
	})
}

// PrintTable renders findings as a bordered table followed by the summary
// footer.
func PrintTable(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sortFindings(findings)
	if len(findings) == 0 {
		fmt.Fprintln(w, "No PII found ✅")
	} else {
		table := tablewriter.NewWriter(w)
		table.Header("SEVERITY", "CATEGORY", "FILE", "LINE", "COLUMN", "MASKED")
		for _, f := range findings {
			_ = table.Append([]string{
				string(f.Severity),
				f.Category,
				f.Path,
				strconv.Itoa(f.Line),
				strconv.Itoa(f.Column),
				f.Match,
			})
		}
		_ = table.Render()
	}
	printFooter(w, findings, opts)
}

// PrintText renders one finding per line, coloured unless opts.NoColor.
func PrintText(w io.Writer, findings []types.Finding, opts PrintOptions) {
	sortFindings(findings)
	if len(findings) == 0 {
		fmt.Fprintln(w, "No PII found ✅")
	} else {
		maxCat := 5
		for _, f := range findings {
			if l := len(f.Category); l > maxCat {
				maxCat = l
			}
		}
		fmt.Fprintf(w, "Findings: %d\n", len(findings))
		for _, f := range findings {
			sev := fmt.Sprintf("%-6s", f.Severity)
			loc := fmt.Sprintf("%s:%d:%d", f.Path, f.Line, f.Column)
			if !opts.NoColor {
				sev = severityStyle(f.Severity).Render(sev)
				loc = pathStyle.Render(loc)
			}
			fmt.Fprintf(w, "%s %-*s %s  %s\n", sev, maxCat, f.Category, loc, f.Match)
		}
	}
	printFooter(w, findings, opts)
}

func printFooter(w io.Writer, findings []types.Finding, opts PrintOptions) {
	if opts.Duration <= 0 && opts.FilesScanned <= 0 {
		return
	}
	high, med, low := 0, 0, 0
	for _, f := range findings {
		switch f.Severity {
		case types.SevHigh:
			high++
		case types.SevMed:
			med++
		default:
			low++
		}
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (high: %d, medium: %d, low: %d)\n", len(findings), high, med, low)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
	if opts.FilesScanned > 0 {
		fmt.Fprintf(w, "Files scanned: %d\n", opts.FilesScanned)
	}
}

// PrintSummary reports the outcome of a mask run: how many values of each
// category were masked and which files were (or would be) rewritten.
func PrintSummary(w io.Writer, counts map[string]int, changed []string, dryRun bool) {
	cats := make([]string, 0, len(counts))
	total := 0
	for c, n := range counts {
		cats = append(cats, c)
		total += n
	}
	sort.Strings(cats)
	if total == 0 {
		fmt.Fprintln(w, "Nothing to mask ✅")
		return
	}
	verb := "Masked"
	if dryRun {
		verb = "Would mask"
	}
	fmt.Fprintf(w, "%s %d value(s):", verb, total)
	for _, c := range cats {
		fmt.Fprintf(w, " %s=%d", c, counts[c])
	}
	fmt.Fprintln(w)
	for _, p := range changed {
		fmt.Fprintf(w, "  %s\n", p)
	}
}

func severityStyle(s types.Severity) lipgloss.Style {
	switch s {
	case types.SevHigh:
		return sevHighStyle
	case types.SevMed:
		return sevMedStyle
	default:
		return sevLowStyle
	}
}
