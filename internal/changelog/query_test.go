package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const queryFixture = `# Changelog

## 2.0.0

- Added feature X.

## 1.1.0

- Improved feature W.

## 1.0.0

- Initial release.
`

func TestRelease_ExactMatch(t *testing.T) {
	c := Parse("CHANGES.md", []byte(queryFixture))

	tests := map[string]struct {
		version string
		wantErr bool
	}{
		"existing version":         {version: "1.1.0"},
		"newest version":           {version: "2.0.0"},
		"missing version":         {version: "3.0.0", wantErr: true},
		"trailing whitespace":     {version: "2.0.0 ", wantErr: true},
		"leading whitespace":      {version: " 1.0.0", wantErr: true},
		"v prefix not normalized": {version: "v1.0.0", wantErr: true},
		"empty version":           {version: "", wantErr: true},
		"partial heading text":    {version: "1.1", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			release, err := c.Release(tc.version)
			if tc.wantErr {
				require.Error(t, err)
				var notFound *VersionNotFoundError
				require.ErrorAs(t, err, &notFound)
				assert.Equal(t, tc.version, notFound.Version)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.version, release.Version)
		})
	}
}

func TestRelease_CaseSensitive(t *testing.T) {
	c := Parse("CHANGES.md", []byte("## V1.0.0\n\nBody.\n"))

	_, err := c.Release("v1.0.0")
	assert.Error(t, err)

	_, err = c.Release("V1.0.0")
	assert.NoError(t, err)
}

func TestVersionNotFoundError_Message(t *testing.T) {
	c := Parse("CHANGES.md", []byte(queryFixture))

	_, err := c.Release("3.0.0")
	require.Error(t, err)
	assert.Equal(t, "No change log entry for release 3.0.0 was found in CHANGES.md.", err.Error())
}

func TestVersionNotFoundError_UsesChangelogPath(t *testing.T) {
	c := Parse("docs/CHANGELOG.md", []byte(queryFixture))

	_, err := c.Release("9.9.9")
	require.Error(t, err)
	assert.Equal(t, "No change log entry for release 9.9.9 was found in docs/CHANGELOG.md.", err.Error())
}

func TestLookupOrderIndependence(t *testing.T) {
	c := Parse("CHANGES.md", []byte(queryFixture))

	first, err := ExtractVersionString(c, "1.0.0")
	require.NoError(t, err)

	// Other lookups in between must not affect later results.
	_, err = c.Release("2.0.0")
	require.NoError(t, err)
	_, _ = c.Release("missing")

	second, err := ExtractVersionString(c, "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLatest(t *testing.T) {
	c := Parse("CHANGES.md", []byte(queryFixture))

	release, ok := c.Latest()
	require.True(t, ok)
	assert.Equal(t, "2.0.0", release.Version)
}

func TestLatest_EmptyChangelog(t *testing.T) {
	c := Parse("CHANGES.md", []byte("# Title only\n"))

	_, ok := c.Latest()
	assert.False(t, ok)
}

func TestVersions_ReturnsCopy(t *testing.T) {
	c := Parse("CHANGES.md", []byte(queryFixture))

	versions := c.Versions()
	versions[0] = "mutated"

	assert.Equal(t, []string{"2.0.0", "1.1.0", "1.0.0"}, c.Versions())
}
