// Package vcs reads version control state for the status bar.
package vcs

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotRepository is returned when dir is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Branch returns the branch checked out in the repository containing dir. A
// detached HEAD is reported as its short commit hash.
func Branch(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", fmt.Errorf("%w: %s", ErrNotRepository, dir)
		}
		return "", fmt.Errorf("opening repository: %w", err)
	}

	head, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("reading HEAD: %w", err)
	}

	if head.Type() == plumbing.SymbolicReference {
		return head.Target().Short(), nil
	}

	hash := head.Hash().String()
	return hash[:7], nil
}
