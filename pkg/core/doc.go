// Package core provides a small, stable facade over maskpii's masking core
// and tree engine for external integrations.
//
// Masking text:
//
//	m := core.New().MaskEmails().MaskPhones()
//	out := m.Process("mail john@example.com") // "mail j***@example.com"
//
// Scanning a tree:
//
//	findings, err := core.Scan(ctx, core.Config{Root: ".", Masker: m})
//	if err != nil { /* handle */ }
//	_ = core.MarshalFindings(os.Stdout, findings)
package core
