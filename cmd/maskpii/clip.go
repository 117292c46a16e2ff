package maskpii

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
)

var flagClipPrint bool

func init() {
	cmd := &cobra.Command{
		Use:   "clip",
		Short: "Mask the contents of the system clipboard in place",
		RunE:  runClip,
	}
	rootCmd.AddCommand(cmd)

	addMaskerFlags(cmd)
	cmd.Flags().BoolVar(&flagClipPrint, "print", false, "also write the masked text to stdout")
}

func runClip(cmd *cobra.Command, _ []string) error {
	if clipboard.Unsupported {
		return errors.New("clipboard is not supported on this system")
	}
	abs, _ := filepath.Abs(".")
	lcfg, gcfg := loadConfigs(abs)
	m, err := buildMasker(lcfg, gcfg)
	if err != nil {
		return err
	}

	text, err := clipboard.ReadAll()
	if err != nil {
		return fmt.Errorf("read clipboard: %w", err)
	}
	r := m.Redact(text)
	if len(r.Matches) > 0 {
		if err := clipboard.WriteAll(r.Text); err != nil {
			return fmt.Errorf("write clipboard: %w", err)
		}
	}
	if flagClipPrint {
		fmt.Fprint(cmd.OutOrStdout(), r.Text)
	}
	fmt.Fprintf(os.Stderr, "Masked %d value(s) on the clipboard\n", len(r.Matches))
	return nil
}
