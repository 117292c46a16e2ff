package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	doublestar "github.com/bmatcuk/doublestar/v4"
	xxhash "github.com/cespare/xxhash/v2"
	"github.com/maskpii/maskpii/internal/cache"
	"github.com/maskpii/maskpii/internal/ignore"
	"github.com/maskpii/maskpii/internal/masking"
	"github.com/maskpii/maskpii/internal/redact"
	"github.com/maskpii/maskpii/internal/types"
	"golang.org/x/sync/errgroup"
)

const ignoreFileName = ".maskpiiignore"

// ErrNoCategories is returned by Run when the masker has nothing enabled.
var ErrNoCategories = errors.New("no categories enabled")

// Config controls which files are visited and what happens to them.
type Config struct {
	Root            string
	IncludeGlobs    string
	ExcludeGlobs    string
	MaxBytes        int64
	Threads         int
	DefaultExcludes bool
	NoCache         bool
	// Write rewrites files that contain PII. DryRun reports them without writing.
	Write    bool
	DryRun   bool
	Masker   masking.Masker
	Progress func()
}

// Result contains findings and run statistics.
type Result struct {
	Findings     []types.Finding
	FilesScanned int
	FilesCached  int
	// FilesChanged lists files that were (or, in dry-run, would be) rewritten.
	FilesChanged []string
	Counts       map[masking.Category]int
	Duration     time.Duration
}

type pendingFile struct {
	rel  string
	data []byte
	hash string
}

type fileOutcome struct {
	findings []types.Finding
	counts   map[masking.Category]int
	changed  bool
	clean    bool
}

// risk maps a category to the severity and confidence reported for it.
var risk = map[masking.Category]struct {
	sev  types.Severity
	conf float64
}{
	masking.CategoryEmail: {types.SevMed, 0.9},
	masking.CategoryPhone: {types.SevLow, 0.6},
}

func determineBatchSize(threads int) int {
	if threads < 2 {
		threads = 2
	}
	if threads > 32 {
		threads = 32
	}
	return threads * 4
}

// Scan runs in report mode and returns only findings.
func Scan(ctx context.Context, cfg Config) ([]types.Finding, error) {
	cfg.Write = false
	res, err := Run(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return res.Findings, nil
}

// Run walks cfg.Root, masks or reports every eligible file and returns the
// aggregated result. Files recorded as clean in the cache are skipped.
func Run(ctx context.Context, cfg Config) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	res := Result{Counts: map[masking.Category]int{}}
	if len(cfg.Masker.Enabled()) == 0 {
		return res, ErrNoCategories
	}
	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(0)
	}
	started := time.Now()

	profile := cfg.Masker.Profile()
	db := cache.DB{Profile: profile, Entries: map[string]string{}}
	if !cfg.NoCache {
		if loaded, err := cache.Load(cfg.Root, profile); err == nil {
			db = loaded
		}
	}
	updated := map[string]string{}
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignoreFileName))

	batchSize := determineBatchSize(cfg.Threads)
	queue := make([]pendingFile, 0, batchSize)
	var chunkErr error
	err := Walk(ctx, cfg, ign, func(rel string, data []byte) {
		if chunkErr != nil {
			return
		}
		h := fastHash(data)
		if !cfg.NoCache && db.Clean(rel, h) {
			res.FilesCached++
			if cfg.Progress != nil {
				cfg.Progress()
			}
			return
		}
		queue = append(queue, pendingFile{rel: rel, data: data, hash: h})
		if len(queue) >= batchSize {
			chunkErr = processChunk(ctx, cfg, queue, updated, &res)
			queue = queue[:0]
		}
	})
	if err != nil {
		return res, fmt.Errorf("walk %s: %w", cfg.Root, err)
	}
	if chunkErr != nil {
		return res, chunkErr
	}
	if err := processChunk(ctx, cfg, queue, updated, &res); err != nil {
		return res, err
	}

	sort.Slice(res.Findings, func(i, j int) bool {
		a, b := res.Findings[i], res.Findings[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
	sort.Strings(res.FilesChanged)
	res.Duration = time.Since(started)

	if !cfg.NoCache && len(updated) > 0 {
		for k, v := range updated {
			db.Entries[k] = v
		}
		if err := cache.Save(cfg.Root, db); err != nil {
			slog.Warn("cache save failed", "root", cfg.Root, "error", err)
		}
	}
	return res, nil
}

// processChunk masks a batch of files concurrently and merges the outcomes
// in input order.
func processChunk(ctx context.Context, cfg Config, chunk []pendingFile, updated map[string]string, res *Result) error {
	if len(chunk) == 0 {
		return nil
	}
	outcomes := make([]fileOutcome, len(chunk))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Threads)
	for i := range chunk {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out, err := maskFile(cfg, chunk[i])
			outcomes[i] = out
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, out := range outcomes {
		f := chunk[i]
		res.FilesScanned++
		if cfg.Progress != nil {
			cfg.Progress()
		}
		res.Findings = append(res.Findings, out.findings...)
		for c, n := range out.counts {
			res.Counts[c] += n
		}
		if out.changed {
			res.FilesChanged = append(res.FilesChanged, f.rel)
		}
		if out.clean && !cfg.NoCache {
			updated[f.rel] = f.hash
		}
	}
	return nil
}

func maskFile(cfg Config, f pendingFile) (fileOutcome, error) {
	text := string(f.data)
	r := cfg.Masker.Redact(text)
	if len(r.Matches) == 0 {
		return fileOutcome{clean: true}, nil
	}
	out := fileOutcome{
		findings: toFindings(f.rel, text, r.Matches),
		counts:   r.Counts(),
		changed:  r.Text != text,
	}
	if cfg.Write && out.changed && !cfg.DryRun {
		if err := redact.WriteFile(filepath.Join(cfg.Root, filepath.FromSlash(f.rel)), []byte(r.Text)); err != nil {
			return out, fmt.Errorf("write %s: %w", f.rel, err)
		}
		slog.Info("masked file", "path", f.rel, "matches", len(r.Matches))
	}
	return out, nil
}

// toFindings converts rune-offset matches into findings with 1-based line
// and column numbers.
func toFindings(rel, text string, matches []masking.Match) []types.Finding {
	sorted := append([]masking.Match(nil), matches...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	out := make([]types.Finding, 0, len(sorted))
	line, col, pos, k := 1, 1, 0, 0
	for _, r := range text {
		for k < len(sorted) && sorted[k].Start == pos {
			m := sorted[k]
			rk := risk[m.Category]
			out = append(out, types.Finding{
				Path:       rel,
				Line:       line,
				Column:     col,
				Match:      m.Masked,
				Category:   string(m.Category),
				Severity:   rk.sev,
				Confidence: rk.conf,
			})
			k++
		}
		if k == len(sorted) {
			break
		}
		pos++
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return out
}

func fastHash(b []byte) string {
	if len(b) == 0 {
		return "0000000000000000"
	}
	sum := xxhash.Sum64(b)
	var buf [16]byte
	const hex = "0123456789abcdef"
	for i := 15; i >= 0; i-- {
		buf[i] = hex[sum&0xF]
		sum >>= 4
	}
	return string(buf[:])
}

// allowedByGlobs returns true if the given path is allowed by the include/exclude
// glob configuration. Include globs are comma-separated and, if provided, act as
// a positive filter. Exclude globs are subtracted last.
func allowedByGlobs(relPath string, cfg Config) bool {
	rp := strings.ReplaceAll(relPath, "\\", "/")
	includes := parseGlobsList(cfg.IncludeGlobs)
	excludes := parseGlobsList(cfg.ExcludeGlobs)
	if len(includes) > 0 && !matchAnyGlob(rp, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(rp, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p, trimGlobPrefix(p))
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
		if ok, _ := doublestar.Match(g, path.Base(pathToMatch)); ok {
			return true
		}
	}
	return false
}

func trimGlobPrefix(g string) string {
	s := strings.TrimPrefix(g, "./")
	for strings.HasPrefix(s, "**/") {
		s = strings.TrimPrefix(s, "**/")
	}
	return s
}
