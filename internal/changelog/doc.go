// Package changelog extracts per-release sections from markdown change logs.
//
// This package implements:
//   - Parsing a CHANGES.md style document into releases keyed by the text of
//     each plain level-2 heading
//   - Exact, case-sensitive version lookup
//   - Canonical markdown re-rendering of a release's elements
//   - Alternate change-log sources (git revisions, remote URLs)
//   - Structural lint checks for duplicate or decorated release headings
//
// A Changelog is built once per invocation and never mutated afterward, so it
// is safe to query from multiple goroutines.
package changelog
