package maskpii

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maskpii/maskpii/internal/audit"
	"github.com/maskpii/maskpii/internal/engine"
	"github.com/maskpii/maskpii/internal/masking"
	"github.com/maskpii/maskpii/internal/redact"
	"github.com/maskpii/maskpii/internal/report"
	"github.com/maskpii/maskpii/internal/types"
)

var (
	flagWrite  bool
	flagDryRun bool
	flagAudit  bool
)

// maskedText is the JSON shape printed for stdin and single files.
type maskedText struct {
	Path    string          `json:"path,omitempty"`
	Text    string          `json:"text"`
	Matches []masking.Match `json:"matches"`
}

func init() {
	cmd := &cobra.Command{
		Use:   "mask [file...]",
		Short: "Mask PII in stdin, files or a directory tree",
		Long: "With no arguments mask reads stdin and writes the masked text to stdout. " +
			"File arguments are masked to stdout, or in place with --write. " +
			"--path masks every eligible file under a directory.",
		Example: `  echo "mail john@example.com" | maskpii mask
  maskpii mask --enable phone contacts.csv
  maskpii mask --write --mask-char '#' notes.txt
  maskpii mask --path ./exports --dry-run`,
		RunE: runMask,
	}
	rootCmd.AddCommand(cmd)

	addTreeFlags(cmd)
	cmd.Flags().BoolVarP(&flagWrite, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "report what would change without writing")
	cmd.Flags().BoolVar(&flagAudit, "audit", false, "record the run in the audit log (with --path)")
}

func runMask(cmd *cobra.Command, args []string) error {
	root := "."
	if flagPath != "" {
		root = flagPath
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return err
	}
	lcfg, gcfg := loadConfigs(abs)
	m, err := buildMasker(lcfg, gcfg)
	if err != nil {
		return err
	}

	if err := checkMaskArgs(flagPath, args, flagWrite, flagDryRun); err != nil {
		return err
	}
	switch {
	case flagPath != "":
		return maskTree(cmd, abs, treeConfig(cmd, abs, lcfg, gcfg, m))
	case len(args) == 0:
		return maskStream(cmd.InOrStdin(), cmd.OutOrStdout(), m)
	default:
		return maskFiles(cmd.OutOrStdout(), args, m)
	}
}

// checkMaskArgs rejects flag combinations that would otherwise be ignored.
func checkMaskArgs(path string, args []string, write, dryRun bool) error {
	if path != "" {
		if len(args) > 0 {
			return errors.New("file arguments cannot be combined with --path")
		}
		return nil
	}
	if len(args) == 0 && (write || dryRun) {
		return errors.New("--write and --dry-run need file arguments or --path")
	}
	return nil
}

func maskStream(in io.Reader, out io.Writer, m masking.Masker) error {
	b, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}
	if flagJSON {
		r := m.Redact(string(b))
		return writeJSON(out, maskedText{Text: r.Text, Matches: nonNilMatches(r.Matches)})
	}
	_, err = io.WriteString(out, m.Process(string(b)))
	return err
}

func maskFiles(out io.Writer, paths []string, m masking.Masker) error {
	if flagWrite || flagDryRun {
		for _, p := range paths {
			var (
				changed bool
				err     error
			)
			if flagDryRun {
				changed, err = redact.WouldChange(p, m.Process)
			} else {
				changed, err = redact.Apply(p, m.Process)
			}
			if err != nil {
				return fmt.Errorf("mask %s: %w", p, err)
			}
			switch {
			case changed && flagDryRun:
				fmt.Fprintln(out, "would mask", p)
			case changed:
				fmt.Fprintln(out, "masked", p)
			}
		}
		return nil
	}

	var docs []maskedText
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		if flagJSON {
			r := m.Redact(string(b))
			docs = append(docs, maskedText{Path: p, Text: r.Text, Matches: nonNilMatches(r.Matches)})
			continue
		}
		if _, err := io.WriteString(out, m.Process(string(b))); err != nil {
			return err
		}
	}
	if flagJSON {
		return writeJSON(out, docs)
	}
	return nil
}

func maskTree(cmd *cobra.Command, abs string, cfg engine.Config) error {
	cfg.Write = true
	cfg.DryRun = flagDryRun
	res, err := engine.Run(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("mask error: %w", err)
	}

	if flagAudit {
		mode := "write"
		if flagDryRun {
			mode = "dry-run"
		}
		rec := audit.NewRunRecord(abs, mode, res.FilesScanned, res.FilesChanged, countsByName(res.Counts), res.Duration)
		if err := audit.NewAuditLog(abs).LogRun(rec); err != nil {
			fmt.Fprintln(os.Stderr, "audit warning:", err)
		}
	}

	out := cmd.OutOrStdout()
	switch {
	case flagSARIF:
		return report.WriteSARIF(out, nonNilFindings(res.Findings))
	case flagJSON:
		return writeJSON(out, nonNilFindings(res.Findings))
	default:
		report.PrintSummary(out, countsByName(res.Counts), res.FilesChanged, flagDryRun)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// no `null` in JSON
func nonNilFindings(fs []types.Finding) []types.Finding {
	if fs == nil {
		return []types.Finding{}
	}
	return fs
}

func nonNilMatches(ms []masking.Match) []masking.Match {
	if ms == nil {
		return []masking.Match{}
	}
	return ms
}
