package types

// Severity is a coarse-grained risk level for a finding.
type Severity string

const (
	SevLow  Severity = "low"
	SevMed  Severity = "medium"
	SevHigh Severity = "high"
)

// Finding describes one piece of PII located in a file. Match always holds
// the masked form; the original value is never stored. Column counts
// characters, not bytes.
type Finding struct {
	Path       string   `json:"path"`
	Line       int      `json:"line"`
	Column     int      `json:"column,omitempty"`
	Match      string   `json:"match"`
	Category   string   `json:"category"`
	Severity   Severity `json:"severity"`
	Confidence float64  `json:"confidence"`
}
