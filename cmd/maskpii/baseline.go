package maskpii

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maskpii/maskpii/internal/report"
)

func init() {
	cmd := &cobra.Command{
		Use:   "baseline",
		Short: "Manage baselines",
	}

	update := &cobra.Command{
		Use:   "update",
		Short: "Update baseline from current scan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := flagPath
			if root == "" {
				root = "."
			}
			abs, err := filepath.Abs(root)
			if err != nil {
				return err
			}
			findings, err := scanFindings(cmd, abs)
			if err != nil {
				return err
			}
			p := filepath.Join(abs, defaultBaseline)
			if err := report.SaveBaseline(p, findings); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Baseline updated (%d findings).\n", len(findings))
			return nil
		},
	}
	addTreeFlags(update)

	rootCmd.AddCommand(cmd)
	cmd.AddCommand(update)
}
