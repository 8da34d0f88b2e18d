package changelog

import "fmt"

// VersionNotFoundError is returned when a requested version matches no
// release heading in the parsed change log.
type VersionNotFoundError struct {
	Version string
	Path    string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("No change log entry for release %s was found in %s.", e.Version, e.Path)
}

// Release retrieves the release for the given version key. The match is
// exact and case-sensitive: version keys are opaque heading text, not
// semver, so no normalization is applied to either side.
func (c *Changelog) Release(version string) (*Release, error) {
	if release, ok := c.releases[version]; ok {
		return release, nil
	}
	return nil, &VersionNotFoundError{Version: version, Path: c.Path}
}

// Latest returns the first release in document order. Change logs list the
// newest release first, so this is the most recent entry by convention, not
// by semver comparison.
func (c *Changelog) Latest() (*Release, bool) {
	if len(c.order) == 0 {
		return nil, false
	}
	release := c.releases[c.order[0]]
	return release, true
}
