package engine

import (
	"context"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/maskpii/maskpii/internal/ignore"
)

// ignoreFileMarker anywhere in a file excludes it from masking.
const ignoreFileMarker = "maskpii:ignore-file"

// Walk traverses the tree under cfg.Root and invokes handle for each eligible
// text file with its slash-separated relative path and contents.
func Walk(ctx context.Context, cfg Config, ign ignore.Matcher, handle func(rel string, data []byte)) error {
	return filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if ctx != nil && ctx.Err() != nil {
			return ctx.Err()
		}
		if err != nil {
			slog.Debug("walk error", "path", p, "error", err)
			return nil
		}
		if d.IsDir() {
			if p != cfg.Root && skipDir(d.Name(), cfg.DefaultExcludes) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, ok := eligible(cfg, ign, p, d)
		if !ok {
			return nil
		}
		b, err := os.ReadFile(p)
		if err != nil {
			slog.Debug("read failed", "path", rel, "error", err)
			return nil
		}
		if strings.Contains(string(b), ignoreFileMarker) {
			slog.Debug("skipping file with ignore marker", "path", rel)
			return nil
		}
		if looksBinary(b) || looksNonTextMIME(rel, b) {
			return nil
		}
		handle(rel, b)
		return nil
	})
}

// eligible applies the cheap path and size filters shared by Walk and
// CountTargets. It returns the slash-separated relative path.
func eligible(cfg Config, ign ignore.Matcher, p string, d fs.DirEntry) (string, bool) {
	if !d.Type().IsRegular() {
		return "", false
	}
	rel, err := filepath.Rel(cfg.Root, p)
	if err != nil {
		return "", false
	}
	rel = filepath.ToSlash(rel)
	if isStateFile(rel) {
		return "", false
	}
	if !allowedByGlobs(rel, cfg) {
		return "", false
	}
	if ign.Match(rel) {
		return "", false
	}
	if cfg.MaxBytes > 0 {
		if info, err := d.Info(); err == nil && info.Size() > cfg.MaxBytes {
			slog.Debug("skipping large file", "path", rel, "size", info.Size())
			return "", false
		}
	}
	if cfg.DefaultExcludes && isDefaultFileExcluded(strings.ToLower(rel)) {
		return "", false
	}
	return rel, true
}

func looksBinary(b []byte) bool {
	const sniff = 800
	n := sniff
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if b[i] == 0 {
			return true
		}
	}
	return false
}

// looksNonTextMIME uses the file extension and a tiny content sniff to skip
// clearly non-text content in addition to NUL-byte detection.
func looksNonTextMIME(path string, b []byte) bool {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		if strings.HasPrefix(ct, "image/") || strings.HasPrefix(ct, "video/") || strings.HasPrefix(ct, "audio/") {
			return true
		}
		if strings.Contains(ct, "zip") || strings.Contains(ct, "tar") || strings.Contains(ct, "gzip") {
			return true
		}
	}
	if len(b) >= 8 && string(b[:8]) == "\x89PNG\r\n\x1a\n" {
		return true
	}
	if len(b) >= 4 && b[0] == 'P' && b[1] == 'K' && b[2] == 3 && b[3] == 4 {
		return true
	}
	return false
}

// CountTargets estimates the number of files Run will visit. It applies the
// path and size filters but does not read file contents.
func CountTargets(cfg Config) (int, error) {
	ign, _ := ignore.Load(filepath.Join(cfg.Root, ignoreFileName))
	count := 0
	err := filepath.WalkDir(cfg.Root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if p != cfg.Root && skipDir(d.Name(), cfg.DefaultExcludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if _, ok := eligible(cfg, ign, p, d); ok {
			count++
		}
		return nil
	})
	return count, err
}
