package changelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initTestRepo creates a repository with two commits of CHANGES.md and a
// lightweight tag on the first commit.
func initTestRepo(t *testing.T) (dir, firstCommit string) {
	t.Helper()
	dir = t.TempDir()

	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	commit := func(contents string) plumbing.Hash {
		t.Helper()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "CHANGES.md"), []byte(contents), 0o644))
		_, err := wt.Add("CHANGES.md")
		require.NoError(t, err)
		hash, err := wt.Commit("update change log", &git.CommitOptions{
			Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
		})
		require.NoError(t, err)
		return hash
	}

	first := commit("# Changelog\n\n## 1.0.0\n\n- Initial release.\n")
	second := commit("# Changelog\n\n## 2.0.0\n\n- Added feature X.\n\n## 1.0.0\n\n- Initial release.\n")

	_, err = repo.CreateTag("v2.0.0", second, nil)
	require.NoError(t, err)

	return dir, first.String()
}

func TestLoadGitRef_ByCommit(t *testing.T) {
	dir, first := initTestRepo(t)

	c, err := LoadGitRef(dir, first, "CHANGES.md")
	require.NoError(t, err)

	assert.Equal(t, first+":CHANGES.md", c.Path)
	assert.Equal(t, []string{"1.0.0"}, c.Versions())

	// 2.0.0 only exists in the second commit.
	_, err = c.Release("2.0.0")
	assert.Error(t, err)
}

func TestLoadGitRef_ByTag(t *testing.T) {
	dir, _ := initTestRepo(t)

	c, err := LoadGitRef(dir, "v2.0.0", "CHANGES.md")
	require.NoError(t, err)

	out, err := ExtractVersionString(c, "2.0.0")
	require.NoError(t, err)
	assert.Equal(t, "## 2.0.0\n\n- Added feature X.\n", out)
}

func TestLoadGitRef_UnknownRevision(t *testing.T) {
	dir, _ := initTestRepo(t)

	_, err := LoadGitRef(dir, "does-not-exist", "CHANGES.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `resolving revision "does-not-exist"`)
}

func TestLoadGitRef_MissingFile(t *testing.T) {
	dir, _ := initTestRepo(t)

	_, err := LoadGitRef(dir, "v2.0.0", "MISSING.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MISSING.md does not exist")
}

func TestLoadGitRef_NotARepository(t *testing.T) {
	_, err := LoadGitRef(t.TempDir(), "HEAD", "CHANGES.md")
	assert.Error(t, err)
}
