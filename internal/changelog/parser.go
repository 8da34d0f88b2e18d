package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// markdown is the shared parse engine. goldmark parsers are stateless, so a
// single instance serves every call without locking.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// Parse builds a Changelog from raw markdown. The path is recorded for use
// in not-found messages only; no file access happens here.
//
// Grouping walks the document's top-level elements in order, keeping a
// current-release accumulator. A plain level-2 heading starts a new release
// keyed by its text; any other element is appended to the current release,
// or discarded when no release heading has been seen yet. Markdown never
// fails to parse: unrecognized syntax degrades to paragraphs.
func Parse(path string, source []byte) *Changelog {
	doc := markdown.Parser().Parse(text.NewReader(source))

	c := &Changelog{
		Path:     path,
		Source:   source,
		releases: make(map[string]*Release),
	}

	var current *Release
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		version, ok := releaseHeading(node, source)
		if !ok {
			if current != nil {
				current.Elements = append(current.Elements, node)
			}
			continue
		}

		current = &Release{Version: version, Elements: []ast.Node{node}}
		if _, seen := c.releases[version]; !seen {
			c.order = append(c.order, version)
		}
		// Duplicate headings rebind the key: last occurrence wins.
		c.releases[version] = current
	}

	return c
}

// Load reads and parses a change-log file from the given path.
func Load(path string) (*Changelog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening change log: %w", err)
	}
	defer f.Close()

	source, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading change log %s: %w", path, err)
	}

	return Parse(path, source), nil
}

// releaseHeading reports whether node marks the start of a release: a
// heading of level 2 whose inline content is plain text on a single line.
// goldmark can split one text run into several adjacent Text nodes at
// punctuation, so the version key joins their segments. Headings carrying
// emphasis, links, or other inline markup deliberately do not qualify;
// loosening this misclassifies decorated headings as releases.
func releaseHeading(node ast.Node, source []byte) (string, bool) {
	heading, ok := node.(*ast.Heading)
	if !ok || heading.Level != 2 || heading.ChildCount() == 0 {
		return "", false
	}

	var version strings.Builder
	for c := heading.FirstChild(); c != nil; c = c.NextSibling() {
		t, ok := c.(*ast.Text)
		if !ok || t.SoftLineBreak() || t.HardLineBreak() {
			return "", false
		}
		version.Write(t.Segment.Value(source))
	}

	return version.String(), true
}
