package cache

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// DB remembers files that contained no PII the last time they were read.
type DB struct {
	// Profile is the masker profile the entries were recorded under.
	Profile string `json:"profile"`
	// Path relative to root -> content hash
	Entries map[string]string `json:"entries"`
}

func defaultPath(root string) string {
	// Prefer storing cache under .git to avoid accidental commits
	gitDir := filepath.Join(root, ".git")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		return filepath.Join(gitDir, "maskpiicache.json")
	}
	return filepath.Join(root, ".maskpiicache.json")
}

// Load reads the cache for root. Entries recorded under a different profile
// are discarded.
func Load(root, profile string) (DB, error) {
	db := DB{Profile: profile, Entries: map[string]string{}}
	b, err := os.ReadFile(defaultPath(root))
	if err != nil {
		return db, err
	}
	var disk DB
	if err := json.Unmarshal(b, &disk); err != nil {
		return db, err
	}
	if disk.Profile != profile || disk.Entries == nil {
		return db, nil
	}
	db.Entries = disk.Entries
	return db, nil
}

// Clean reports whether path was recorded with the given hash.
func (db DB) Clean(path, hash string) bool {
	return db.Entries != nil && hash != "" && db.Entries[path] == hash
}

func Save(root string, db DB) error {
	if db.Entries == nil {
		return errors.New("empty cache")
	}
	b, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(defaultPath(root), b, 0644)
}
