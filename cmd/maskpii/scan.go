package maskpii

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maskpii/maskpii/internal/cache"
	"github.com/maskpii/maskpii/internal/engine"
	"github.com/maskpii/maskpii/internal/report"
	"github.com/maskpii/maskpii/internal/types"
)

const defaultBaseline = "maskpii.baseline.json"

var (
	flagBaseline      string
	flagWriteBaseline bool
	flagTable         bool
	flagText          bool
	flagLast          bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Report PII in a directory tree without changing it",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	addTreeFlags(cmd)
	cmd.Flags().StringVar(&flagBaseline, "baseline", defaultBaseline, "baseline file, relative to --path")
	cmd.Flags().BoolVar(&flagWriteBaseline, "write-baseline", false, "record current findings as the baseline")
	cmd.Flags().BoolVar(&flagTable, "table", false, "output in table format with borders (default)")
	cmd.Flags().BoolVar(&flagText, "text", false, "output in plain text columnar format")
	cmd.Flags().BoolVar(&flagLast, "last", false, "show the results of the previous scan without rescanning")
}

func runScan(cmd *cobra.Command, _ []string) error {
	root := flagPath
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	lcfg, gcfg := loadConfigs(abs)
	baselinePath := flagBaseline
	if !filepath.IsAbs(baselinePath) {
		baselinePath = filepath.Join(abs, baselinePath)
	}
	failOn := pickString(flagFailOn, lcfg.FailOn, gcfg.FailOn)
	quiet := flagJSON || flagSARIF

	var res engine.Result
	if flagLast {
		last, err := cache.LoadResults(abs)
		if err != nil {
			return fmt.Errorf("no previous scan for %s: %w", abs, err)
		}
		res.Findings = last.Findings
		if !quiet {
			fmt.Fprintf(os.Stderr, "Showing scan from %s\n", last.Timestamp.Format("2006-01-02 15:04:05"))
		}
	} else {
		m, err := buildMasker(lcfg, gcfg)
		if err != nil {
			return err
		}
		cfg := treeConfig(cmd, abs, lcfg, gcfg, m)
		if !quiet {
			fmt.Fprintf(os.Stderr, "Scanning %s for %v...\n", abs, m.Enabled())
		}

		total, _ := engine.CountTargets(cfg)
		progressed := 0
		if total > 0 && !quiet {
			cfg.Progress = func() {
				progressed++
				if progressed%10 == 0 || progressed == total {
					pct := float64(progressed) / float64(total) * 100
					fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", progressed, total, pct)
				}
			}
		}
		res, err = engine.Run(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("scan error: %w", err)
		}
		if progressed > 0 {
			fmt.Fprintln(os.Stderr)
		}
		if err := cache.SaveResults(abs, res.Findings); err != nil {
			fmt.Fprintln(os.Stderr, "results warning:", err)
		}
	}

	if flagWriteBaseline {
		if err := report.SaveBaseline(baselinePath, res.Findings); err != nil {
			return fmt.Errorf("write baseline: %w", err)
		}
		if !quiet {
			fmt.Fprintf(os.Stderr, "Baseline written to %s (%d findings)\n", baselinePath, len(res.Findings))
		}
	}

	base, err := loadBaseline(baselinePath)
	if err != nil {
		return err
	}
	newFindings := nonNilFindings(report.FilterNewFindings(res.Findings, base))

	opts := report.PrintOptions{
		NoColor:      noColor(lcfg, gcfg),
		Duration:     res.Duration,
		FilesScanned: res.FilesScanned + res.FilesCached,
	}
	out := cmd.OutOrStdout()
	switch {
	case flagSARIF:
		stats := map[string]int{
			"filesScanned": res.FilesScanned,
			"filesCached":  res.FilesCached,
			"baselined":    len(res.Findings) - len(newFindings),
		}
		if err := report.WriteSARIFWithStats(out, newFindings, stats); err != nil {
			return fmt.Errorf("sarif error: %w", err)
		}
	case flagJSON:
		if err := writeJSON(out, newFindings); err != nil {
			return err
		}
	case flagText:
		report.PrintText(out, newFindings, opts)
	default:
		report.PrintTable(out, newFindings, opts)
	}

	if report.ShouldFail(newFindings, failOn) {
		os.Exit(1)
	}
	return nil
}

// loadBaseline reads the baseline at p. A missing file is an empty baseline;
// an unreadable or corrupt one is an error.
func loadBaseline(p string) (report.Baseline, error) {
	base, err := report.LoadBaseline(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return report.Baseline{Items: map[string]bool{}}, nil
		}
		return base, fmt.Errorf("load baseline: %w", err)
	}
	return base, nil
}

// scanFindings runs a report-only pass over abs with the resolved config.
func scanFindings(cmd *cobra.Command, abs string) ([]types.Finding, error) {
	lcfg, gcfg := loadConfigs(abs)
	m, err := buildMasker(lcfg, gcfg)
	if err != nil {
		return nil, err
	}
	return engine.Scan(cmd.Context(), treeConfig(cmd, abs, lcfg, gcfg, m))
}
