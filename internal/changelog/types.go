package changelog

import "github.com/yuin/goldmark/ast"

// Release is one version's section of the change log: the level-2 heading
// that introduced it followed by every top-level element up to (but not
// including) the next release heading. Each Release exclusively owns its
// element slice.
type Release struct {
	// Version is the exact heading text, with no trimming or case folding.
	Version string
	// Elements are top-level goldmark block nodes in document order.
	Elements []ast.Node
}

// Changelog maps version keys to releases. The goldmark nodes held by each
// Release reference byte ranges of Source, so the raw document travels with
// the parsed structure.
type Changelog struct {
	// Path identifies where the document came from. It is used verbatim in
	// not-found messages, so callers should pass whatever the user typed
	// (a file path, a URL, or a "ref:path" pair).
	Path string
	// Source is the raw markdown the changelog was parsed from.
	Source []byte

	releases map[string]*Release
	order    []string
}

// Versions returns all version keys in document order of first appearance.
// Change logs conventionally list the newest release first.
func (c *Changelog) Versions() []string {
	versions := make([]string, len(c.order))
	copy(versions, c.order)
	return versions
}

// Len returns the number of releases in the changelog.
func (c *Changelog) Len() int {
	return len(c.releases)
}
