package maskpii

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/maskpii/maskpii/internal/config"
	"github.com/maskpii/maskpii/internal/engine"
	"github.com/maskpii/maskpii/internal/masking"
)

const (
	defaultEnable   = "email,phone"
	defaultMaxBytes = 1 << 20
)

// flags shared by the commands that walk a tree
var (
	flagPath     string
	flagInclude  string
	flagExclude  string
	flagMaxBytes int64
	flagEnable   string
	flagMaskChar string
)

func addTreeFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagPath, "path", "p", "", "directory tree to process")
	cmd.Flags().StringVar(&flagInclude, "include", "", "comma-separated include globs")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().Int64Var(&flagMaxBytes, "max-bytes", 0, "skip files larger than this (default 1MiB)")
	addMaskerFlags(cmd)
}

func addMaskerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagEnable, "enable", "", "categories to mask, comma-separated (default email,phone)")
	cmd.Flags().StringVar(&flagMaskChar, "mask-char", "", "mask character (default *)")
}

// loadConfigs returns the repo-local and global file configs. Missing files
// yield zero values.
func loadConfigs(root string) (local, global config.FileConfig) {
	if c, err := config.LoadGlobal(); err == nil {
		global = c
	}
	if c, err := config.LoadLocal(root); err == nil {
		local = c
	}
	return local, global
}

// buildMasker resolves --enable and --mask-char with precedence
// CLI > local > global and falls back to both categories.
func buildMasker(lcfg, gcfg config.FileConfig) (masking.Masker, error) {
	enable := pickString(flagEnable, lcfg.Enable, gcfg.Enable)
	if enable == "" {
		enable = defaultEnable
	}
	cats, err := masking.ParseCategories(enable)
	if err != nil {
		return masking.Masker{}, err
	}
	m := masking.New()
	for _, c := range cats {
		m = m.Enable(c)
	}
	mc := config.ParseMaskChar(pickString(flagMaskChar, lcfg.MaskChar, gcfg.MaskChar))
	return m.WithMaskChar(mc), nil
}

func treeConfig(cmd *cobra.Command, abs string, lcfg, gcfg config.FileConfig, m masking.Masker) engine.Config {
	maxBytes := pickInt64(flagMaxBytes, lcfg.MaxBytes, gcfg.MaxBytes)
	if maxBytes == 0 {
		maxBytes = defaultMaxBytes
	}
	return engine.Config{
		Root:            abs,
		IncludeGlobs:    pickString(flagInclude, lcfg.Include, gcfg.Include),
		ExcludeGlobs:    pickString(flagExclude, lcfg.Exclude, gcfg.Exclude),
		MaxBytes:        maxBytes,
		Threads:         pickInt(flagThreads, lcfg.Threads, gcfg.Threads),
		DefaultExcludes: pickFlagBool(cmd, "default-excludes", flagDefaultExcludes, lcfg.DefaultExcludes, gcfg.DefaultExcludes),
		NoCache:         flagNoCache,
		Masker:          m,
	}
}

// noColor reports whether styled output should be suppressed, either by
// flag/config or because stdout is not a terminal.
func noColor(lcfg, gcfg config.FileConfig) bool {
	if pickBool(flagNoColor, lcfg.NoColor, gcfg.NoColor) {
		return true
	}
	return !term.IsTerminal(int(os.Stdout.Fd()))
}

func countsByName(counts map[masking.Category]int) map[string]int {
	out := make(map[string]int, len(counts))
	for c, n := range counts {
		out[string(c)] = n
	}
	return out
}

func pickString(cli string, local, global *string) string {
	if cli != "" {
		return cli
	}
	if local != nil && *local != "" {
		return *local
	}
	if global != nil && *global != "" {
		return *global
	}
	return ""
}

func pickInt(cli int, local, global *int) int {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickInt64(cli int64, local, global *int64) int64 {
	if cli != 0 {
		return cli
	}
	if local != nil && *local != 0 {
		return *local
	}
	if global != nil && *global != 0 {
		return *global
	}
	return 0
}

func pickBool(cli bool, local, global *bool) bool {
	if cli {
		return true
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return false
}

// pickFlagBool is pickBool for flags whose default is true: the CLI value
// wins only when the flag was set explicitly.
func pickFlagBool(cmd *cobra.Command, name string, cli bool, local, global *bool) bool {
	if cmd != nil && cmd.Flags().Changed(name) {
		return cli
	}
	if local != nil {
		return *local
	}
	if global != nil {
		return *global
	}
	return cli
}
