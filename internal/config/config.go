package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for maskpii. Pointer
// fields distinguish "unset" from zero values so precedence can be applied.
type FileConfig struct {
	Enable          *string `yaml:"enable,omitempty"`
	MaskChar        *string `yaml:"mask_char,omitempty"`
	Include         *string `yaml:"include,omitempty"`
	Exclude         *string `yaml:"exclude,omitempty"`
	MaxBytes        *int64  `yaml:"max_bytes,omitempty"`
	Threads         *int    `yaml:"threads,omitempty"`
	NoColor         *bool   `yaml:"no_color,omitempty"`
	DefaultExcludes *bool   `yaml:"default_excludes,omitempty"`
	FailOn          *string `yaml:"fail_on,omitempty"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .maskpii.yml/.yaml and maskpii.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".maskpii.yml", ".maskpii.yaml", "maskpii.yml", "maskpii.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "maskpii", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// ParseMaskChar returns the first rune of s, or 0 when s is empty so callers
// fall back to the default mask character.
func ParseMaskChar(s string) rune {
	if s == "" {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// Merge returns local with unset fields filled from global.
func Merge(local, global FileConfig) FileConfig {
	out := local
	if out.Enable == nil {
		out.Enable = global.Enable
	}
	if out.MaskChar == nil {
		out.MaskChar = global.MaskChar
	}
	if out.Include == nil {
		out.Include = global.Include
	}
	if out.Exclude == nil {
		out.Exclude = global.Exclude
	}
	if out.MaxBytes == nil {
		out.MaxBytes = global.MaxBytes
	}
	if out.Threads == nil {
		out.Threads = global.Threads
	}
	if out.NoColor == nil {
		out.NoColor = global.NoColor
	}
	if out.DefaultExcludes == nil {
		out.DefaultExcludes = global.DefaultExcludes
	}
	if out.FailOn == nil {
		out.FailOn = global.FailOn
	}
	return out
}

// ErrExists is returned by Write when the target exists and force is unset.
var ErrExists = errors.New("config file already exists")

// Write marshals cfg to YAML at path. An existing file is only replaced when
// force is set.
func Write(path string, cfg FileConfig, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrExists, path)
		}
	}
	b, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}
