package maskpii

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/maskpii/maskpii/internal/config"
	"github.com/maskpii/maskpii/internal/masking"
)

var (
	cfgOutput          string
	cfgEnable          string
	cfgMaskChar        string
	cfgInclude         string
	cfgExclude         string
	cfgThreads         int
	cfgMaxBytes        int64
	cfgNoColor         bool
	cfgDefaultExcludes bool
	cfgFailOn          string
	cfgForce           bool
	cfgShowPath        string
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a .maskpii.yml with the selected options",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration (local over global)",
		RunE:  runConfigShow,
	}
	showCmd.Flags().StringVarP(&cfgShowPath, "path", "p", ".", "repository root to read local config from")
	cfgCmd.AddCommand(showCmd)

	initCmd.Flags().StringVar(&cfgOutput, "output", ".maskpii.yml", "output file path")
	initCmd.Flags().StringVar(&cfgEnable, "enable", defaultEnable, "categories to mask, comma-separated")
	initCmd.Flags().StringVar(&cfgMaskChar, "mask-char", "*", "mask character")
	initCmd.Flags().StringVar(&cfgInclude, "include", "", "comma-separated include globs")
	initCmd.Flags().StringVar(&cfgExclude, "exclude", "", "comma-separated exclude globs")
	initCmd.Flags().IntVar(&cfgThreads, "threads", 0, "worker threads (0=GOMAXPROCS)")
	initCmd.Flags().Int64Var(&cfgMaxBytes, "max-bytes", defaultMaxBytes, "skip files larger than this")
	initCmd.Flags().BoolVar(&cfgNoColor, "no-color", false, "disable color output by default")
	initCmd.Flags().BoolVar(&cfgDefaultExcludes, "default-excludes", true, "enable default ignore patterns")
	initCmd.Flags().StringVar(&cfgFailOn, "fail-on", "medium", "scan failure threshold: low|medium|high")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cats, err := masking.ParseCategories(cfgEnable)
	if err != nil {
		return err
	}
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = string(c)
	}
	switch cfgFailOn {
	case "low", "medium", "high":
	default:
		return fmt.Errorf("invalid --fail-on %q (want low|medium|high)", cfgFailOn)
	}

	fc := config.FileConfig{
		Enable:          strPtr(strings.Join(names, ",")),
		MaskChar:        optStrPtr(cfgMaskChar),
		Include:         optStrPtr(cfgInclude),
		Exclude:         optStrPtr(cfgExclude),
		MaxBytes:        int64Ptr(cfgMaxBytes),
		Threads:         intPtr(cfgThreads),
		NoColor:         boolPtr(cfgNoColor),
		DefaultExcludes: boolPtr(cfgDefaultExcludes),
		FailOn:          strPtr(cfgFailOn),
	}
	if err := config.Write(cfgOutput, fc, cfgForce); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", cfgOutput)
	return nil
}

func strPtr(s string) *string { return &s }
func optStrPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
func intPtr(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}
func int64Ptr(v int64) *int64 { return &v }
func boolPtr(v bool) *bool    { return &v }

// runConfigShow prints the configuration in effect for --path after merging
// repo-local over global settings.
func runConfigShow(cmd *cobra.Command, _ []string) error {
	abs, err := filepath.Abs(cfgShowPath)
	if err != nil {
		return err
	}
	lcfg, gcfg := loadConfigs(abs)
	eff := config.Merge(lcfg, gcfg)
	b, err := yaml.Marshal(&eff)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}
