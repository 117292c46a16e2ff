// Package masking implements the email and phone detection-and-masking engine.
// Scanning works directly on bytes: only ASCII bytes are ever structural, so
// multi-byte UTF-8 content is copied through unchanged. Every substitution is
// one-for-one, which keeps the rune count of the output equal to the input.
// This package is internal; external consumers should use pkg/core.
package masking
