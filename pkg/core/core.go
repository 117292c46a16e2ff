package core

import (
	"context"

	"github.com/maskpii/maskpii/internal/engine"
	"github.com/maskpii/maskpii/internal/masking"
	"github.com/maskpii/maskpii/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type (
	Masker    = masking.Masker
	Category  = masking.Category
	Match     = masking.Match
	Result    = masking.Result
	Config    = engine.Config
	RunResult = engine.Result
	Finding   = types.Finding
)

const (
	CategoryEmail   = masking.CategoryEmail
	CategoryPhone   = masking.CategoryPhone
	DefaultMaskChar = masking.DefaultMaskChar
)

var (
	ErrUnknownCategory = masking.ErrUnknownCategory
	ErrNoCategories    = engine.ErrNoCategories
)

// New returns a Masker with every category disabled and the default mask
// character.
func New() Masker { return masking.New() }

// ParseCategories maps names such as "email,phone" to categories.
func ParseCategories(s string) ([]Category, error) { return masking.ParseCategories(s) }

// Run masks or reports every eligible file under cfg.Root.
func Run(ctx context.Context, cfg Config) (RunResult, error) {
	return engine.Run(ctx, cfg)
}

// Scan is Run in report mode, returning findings only.
func Scan(ctx context.Context, cfg Config) ([]Finding, error) {
	return engine.Scan(ctx, cfg)
}
