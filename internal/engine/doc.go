// Package engine applies the masking pipeline to a directory tree. It walks
// eligible text files, masks or reports PII with a bounded worker pool, and
// keeps an incremental cache of files known to be clean. This package is
// internal; external consumers should use the stable facade in pkg/core.
package engine
