package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// RunRecord summarises one mask run. It holds paths and counts only; matched
// or masked text is never written to the log.
type RunRecord struct {
	Timestamp    time.Time      `json:"timestamp"`
	RunID        string         `json:"run_id"`
	Root         string         `json:"root"`
	Mode         string         `json:"mode"`
	FilesScanned int            `json:"files_scanned"`
	FilesChanged int            `json:"files_changed"`
	Counts       map[string]int `json:"counts"`
	Duration     string         `json:"duration"`
	Files        []string       `json:"files,omitempty"`
}

// Total is the number of values masked in the run.
func (r RunRecord) Total() int {
	n := 0
	for _, c := range r.Counts {
		n += c
	}
	return n
}

type AuditLog struct {
	logPath string
}

func NewAuditLog(root string) *AuditLog {
	gitDir := filepath.Join(root, ".git")
	logPath := filepath.Join(root, ".maskpii_audit.jsonl")
	if st, err := os.Stat(gitDir); err == nil && st.IsDir() {
		logPath = filepath.Join(gitDir, "maskpii_audit.jsonl")
	}
	return &AuditLog{logPath: logPath}
}

// Path returns the file the log is stored in.
func (a *AuditLog) Path() string { return a.logPath }

// LoadHistory returns all records, newest first. Reading stops at the first
// malformed record.
func (a *AuditLog) LoadHistory() ([]RunRecord, error) {
	f, err := os.Open(a.logPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	var records []RunRecord
	decoder := json.NewDecoder(f)
	for decoder.More() {
		var record RunRecord
		if err := decoder.Decode(&record); err != nil {
			break
		}
		records = append(records, record)
	}

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

func (a *AuditLog) LogRun(record RunRecord) error {
	if record.RunID == "" {
		record.RunID = fmt.Sprintf("run_%d", time.Now().UnixNano())
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer f.Close()

	if err := json.NewEncoder(f).Encode(record); err != nil {
		return fmt.Errorf("failed to write audit record: %w", err)
	}
	return nil
}

// DeleteRecord removes the record at index, counted newest first as returned
// by LoadHistory.
func (a *AuditLog) DeleteRecord(index int) error {
	records, err := a.LoadHistory()
	if err != nil {
		return err
	}

	if index < 0 || index >= len(records) {
		return fmt.Errorf("invalid index: %d", index)
	}

	records = append(records[:index], records[index+1:]...)

	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}

	f, err := os.OpenFile(a.logPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	for _, record := range records {
		if err := encoder.Encode(record); err != nil {
			return fmt.Errorf("failed to write audit record: %w", err)
		}
	}
	return nil
}

// NewRunRecord builds a record for a run over root. Changed paths are stored
// sorted.
func NewRunRecord(root, mode string, filesScanned int, changed []string, counts map[string]int, duration time.Duration) RunRecord {
	files := append([]string(nil), changed...)
	sort.Strings(files)
	c := make(map[string]int, len(counts))
	for k, v := range counts {
		c[k] = v
	}
	return RunRecord{
		Timestamp:    time.Now(),
		Root:         root,
		Mode:         mode,
		FilesScanned: filesScanned,
		FilesChanged: len(files),
		Counts:       c,
		Duration:     duration.String(),
		Files:        files,
	}
}
