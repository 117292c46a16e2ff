package engine

import (
	"path"
	"strings"
)

var defaultExcludeDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"target":       true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"out":          true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"coverage":     true,
	"bin":          true,
	"obj":          true,
}

// suffixes treated as non-text or generated artifacts when default excludes are enabled
var defaultExcludeFileSuffixes = []string{
	".min.js", ".map",
	".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg",
	".pdf", ".zip", ".gz", ".tar", ".tgz", ".7z",
	".jar", ".class", ".exe", ".dll", ".so",
	".wasm", ".pyc",
	".pb.go", ".gen.go",
}

var defaultExcludeFileNames = map[string]bool{
	"yarn.lock":         true,
	"package-lock.json": true,
	"pnpm-lock.yaml":    true,
	"composer.lock":     true,
	"poetry.lock":       true,
	"go.sum":            true,
	".ds_store":         true,
}

// stateFiles are written by maskpii itself and are never masked.
var stateFiles = map[string]bool{
	".maskpiicache.json":      true,
	"maskpiicache.json":       true,
	".maskpii_last_scan.json": true,
	"maskpii_last_scan.json":  true,
	".maskpii_audit.jsonl":    true,
	"maskpii_audit.jsonl":     true,
	"maskpii.baseline.json":   true,
}

func isStateFile(rel string) bool {
	return stateFiles[path.Base(rel)]
}

// skipDir reports whether a directory is pruned from every walk.
func skipDir(name string, defaults bool) bool {
	if name == ".git" {
		return true
	}
	return defaults && isDefaultDirExcluded(name)
}

func isDefaultDirExcluded(name string) bool {
	return defaultExcludeDirs[name] || strings.HasPrefix(name, ".git")
}

func isDefaultFileExcluded(lowerRel string) bool {
	if strings.HasSuffix(lowerRel, ".lock") {
		return true
	}
	for _, s := range defaultExcludeFileSuffixes {
		if strings.HasSuffix(lowerRel, s) {
			return true
		}
	}
	if strings.Contains(lowerRel, ".gen.") {
		return true
	}
	parts := strings.Split(lowerRel, "/")
	return defaultExcludeFileNames[parts[len(parts)-1]]
}
