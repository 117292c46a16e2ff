package core

import (
	"encoding/json"
	"io"
)

// MarshalFindings pretty-prints findings as JSON. A nil slice is written as
// an empty array.
func MarshalFindings(w io.Writer, findings []Finding) error {
	if findings == nil {
		findings = []Finding{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(findings)
}

// UnmarshalFindings decodes findings JSON written by MarshalFindings or
// `maskpii scan --json`.
func UnmarshalFindings(r io.Reader) ([]Finding, error) {
	var fs []Finding
	if err := json.NewDecoder(r).Decode(&fs); err != nil {
		return nil, err
	}
	return fs, nil
}

type resultJSON struct {
	Text    string  `json:"text"`
	Matches []Match `json:"matches"`
}

// MarshalResult writes a Redact result as {"text": ..., "matches": [...]}.
func MarshalResult(w io.Writer, r Result) error {
	doc := resultJSON{Text: r.Text, Matches: r.Matches}
	if doc.Matches == nil {
		doc.Matches = []Match{}
	}
	return json.NewEncoder(w).Encode(doc)
}
