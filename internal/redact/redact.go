// Package redact rewrites files in place with a text transform.
package redact

import (
	"fmt"
	"os"
	"path/filepath"
)

// Transform maps file contents to their redacted form.
type Transform func(string) string

// WouldChange reports whether applying fn to the file would modify it.
func WouldChange(path string, fn Transform) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	s := string(b)
	return fn(s) != s, nil
}

// Apply rewrites the file with fn applied and reports whether it changed.
// Unchanged files are not touched.
func Apply(path string, fn Transform) (bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	s := string(b)
	out := fn(s)
	if out == s {
		return false, nil
	}
	if err := WriteFile(path, []byte(out)); err != nil {
		return false, err
	}
	return true, nil
}

// WriteFile replaces path with data via a temp file and rename, keeping the
// original permission bits.
func WriteFile(path string, data []byte) error {
	mode := os.FileMode(0644)
	if st, err := os.Stat(path); err == nil {
		mode = st.Mode().Perm()
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".maskpii-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(name)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(name, mode); err != nil {
		_ = os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
