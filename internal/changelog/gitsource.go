package changelog

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// LoadGitRef reads a change-log file from a git revision (tag, branch, or
// commit) of the repository containing dir, without touching the working
// tree. The changelog's path is recorded as "revision:path" so not-found
// messages identify the exact source searched.
func LoadGitRef(dir, revision, path string) (*Changelog, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", dir, err)
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", revision, err)
	}

	commit, err := resolveCommit(repo, *hash)
	if err != nil {
		return nil, fmt.Errorf("resolving revision %q: %w", revision, err)
	}

	file, err := commit.File(path)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) {
			return nil, fmt.Errorf("%s does not exist at revision %q", path, revision)
		}
		return nil, fmt.Errorf("reading %s at revision %q: %w", path, revision, err)
	}

	contents, err := file.Contents()
	if err != nil {
		return nil, fmt.Errorf("reading %s at revision %q: %w", path, revision, err)
	}

	return Parse(revision+":"+path, []byte(contents)), nil
}

// resolveCommit peels a resolved hash to a commit, following annotated tags.
func resolveCommit(repo *git.Repository, hash plumbing.Hash) (*object.Commit, error) {
	commit, err := repo.CommitObject(hash)
	if err == nil {
		return commit, nil
	}

	tag, tagErr := repo.TagObject(hash)
	if tagErr != nil {
		return nil, err
	}
	return tag.Commit()
}
