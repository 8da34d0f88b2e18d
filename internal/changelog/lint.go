package changelog

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Finding is one structural problem discovered by Lint.
type Finding struct {
	Path    string
	Line    int
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d: %s", f.Path, f.Line, f.Message)
}

// Lint reports structural problems in a change-log document that the
// permissive parser absorbs silently:
//
//   - duplicate release headings, where the later section replaces the
//     earlier one during parsing (last-wins)
//   - level-2 headings with emphasis, links, or other decoration, which do
//     not qualify as release markers and end up as body content
//
// Findings are returned in document order. An empty slice means the
// document is clean.
func Lint(path string, source []byte) []Finding {
	doc := markdown.Parser().Parse(text.NewReader(source))

	var findings []Finding
	firstSeen := make(map[string]int)

	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		heading, ok := node.(*ast.Heading)
		if !ok || heading.Level != 2 {
			continue
		}
		line := nodeLine(node, source)

		version, plain := releaseHeading(node, source)
		if !plain {
			findings = append(findings, Finding{
				Path:    path,
				Line:    line,
				Message: "level-2 heading has decorated text and will not start a release",
			})
			continue
		}

		if prev, dup := firstSeen[version]; dup {
			findings = append(findings, Finding{
				Path: path,
				Line: line,
				Message: fmt.Sprintf("duplicate release heading %q (first at line %d); this section replaces the earlier one",
					version, prev),
			})
			continue
		}
		firstSeen[version] = line
	}

	return findings
}

// nodeLine returns the 1-based source line a block node starts on.
func nodeLine(node ast.Node, source []byte) int {
	lines := node.Lines()
	if lines.Len() == 0 {
		return 1
	}
	start := lines.At(0).Start
	if start > len(source) {
		start = len(source)
	}
	return bytes.Count(source[:start], []byte("\n")) + 1
}
