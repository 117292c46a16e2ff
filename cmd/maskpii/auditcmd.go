package maskpii

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/maskpii/maskpii/internal/audit"
)

var (
	auditPath   string
	auditDelete int
	auditLimit  int
)

func init() {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "List or delete recorded mask runs",
		RunE:  runAudit,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&auditPath, "path", "p", ".", "repository root")
	cmd.Flags().IntVar(&auditDelete, "delete", -1, "delete the record at this index (0 = newest)")
	cmd.Flags().IntVar(&auditLimit, "limit", 20, "show at most this many records (0 = all)")
}

func runAudit(cmd *cobra.Command, _ []string) error {
	abs, err := filepath.Abs(auditPath)
	if err != nil {
		return err
	}
	log := audit.NewAuditLog(abs)
	out := cmd.OutOrStdout()

	if auditDelete >= 0 {
		if err := log.DeleteRecord(auditDelete); err != nil {
			return err
		}
		fmt.Fprintf(out, "Deleted record %d from %s\n", auditDelete, log.Path())
		return nil
	}

	records, err := log.LoadHistory()
	if err != nil {
		return err
	}
	if auditLimit > 0 && len(records) > auditLimit {
		records = records[:auditLimit]
	}
	if flagJSON {
		if records == nil {
			records = []audit.RunRecord{}
		}
		return writeJSON(out, records)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No recorded runs")
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.Header("#", "WHEN", "MODE", "SCANNED", "CHANGED", "MASKED", "DURATION")
	for i, r := range records {
		_ = table.Append([]string{
			strconv.Itoa(i),
			r.Timestamp.Format("2006-01-02 15:04:05"),
			r.Mode,
			strconv.Itoa(r.FilesScanned),
			strconv.Itoa(r.FilesChanged),
			formatCounts(r.Counts),
			r.Duration,
		})
	}
	return table.Render()
}

func formatCounts(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+strconv.Itoa(counts[k]))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
