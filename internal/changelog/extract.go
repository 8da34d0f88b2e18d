package changelog

import (
	"io"
	"strings"
)

// ExtractVersion looks up a version and renders its release as canonical
// markdown to w. On a miss nothing is written and the returned error is a
// *VersionNotFoundError carrying the user-facing message.
func ExtractVersion(c *Changelog, version string, w io.Writer) error {
	release, err := c.Release(version)
	if err != nil {
		return err
	}
	return Render(w, c.Source, release.Elements)
}

// ExtractVersionString renders one version's release to a string.
func ExtractVersionString(c *Changelog, version string) (string, error) {
	var b strings.Builder
	if err := ExtractVersion(c, version, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}
