package changelog

import (
	"bytes"
	"fmt"
	"io"
	"testing"
)

// generateLargeChangelog creates a markdown change log with the specified
// number of releases, each carrying a small body of mixed block types.
func generateLargeChangelog(releaseCount int) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Changelog\n\n")
	for v := releaseCount; v >= 1; v-- {
		fmt.Fprintf(&buf, "## %d.0.0\n\n", v)
		fmt.Fprintf(&buf, "Release %d of the benchmark project.\n\n", v)
		buf.WriteString("- Added a feature with `inline code` and a [link](https://example.com).\n")
		buf.WriteString("- Fixed a bug reported *upstream*.\n")
		buf.WriteString("- Removed a deprecated flag.\n\n")
		buf.WriteString("```sh\nmake upgrade\n```\n\n")
	}

	return buf.Bytes()
}

// BenchmarkParse_500Releases benchmarks parsing a large change log.
func BenchmarkParse_500Releases(b *testing.B) {
	source := generateLargeChangelog(500)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := Parse("CHANGES.md", source)
		if c.Len() != 500 {
			b.Fatalf("expected 500 releases, got %d", c.Len())
		}
	}
}

// BenchmarkParse_50Releases benchmarks a typical change-log size.
func BenchmarkParse_50Releases(b *testing.B) {
	source := generateLargeChangelog(50)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := Parse("CHANGES.md", source)
		if c.Len() != 50 {
			b.Fatalf("expected 50 releases, got %d", c.Len())
		}
	}
}

// BenchmarkExtractVersion benchmarks the full lookup-and-render path once
// the change log is parsed.
func BenchmarkExtractVersion(b *testing.B) {
	c := Parse("CHANGES.md", generateLargeChangelog(100))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := ExtractVersion(c, "50.0.0", io.Discard); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
