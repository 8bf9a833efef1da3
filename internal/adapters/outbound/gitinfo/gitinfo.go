package gitinfo

import (
	"fmt"

	"github.com/go-git/go-git/v5"
)

// shortHashLen matches git's default abbreviation.
const shortHashLen = 7

// GitInfoAdapter implements domain.RevisionInfo using go-git. Profile
// directories are usually nested inside a repository, so the .git lookup walks
// up from dir.
type GitInfoAdapter struct{}

func New() *GitInfoAdapter {
	return &GitInfoAdapter{}
}

func (g *GitInfoAdapter) open(dir string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
}

func (g *GitInfoAdapter) CommitHash(dir string) (string, error) {
	repo, err := g.open(dir)
	if err != nil {
		return "", fmt.Errorf("opening git repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

// ProfileRevision returns the abbreviated HEAD hash of dir, or "" when dir is
// not under version control. History entries carry it so a score can be traced
// to the weight tables that produced it.
func (g *GitInfoAdapter) ProfileRevision(dir string) string {
	hash, err := g.CommitHash(dir)
	if err != nil || len(hash) < shortHashLen {
		return ""
	}
	return hash[:shortHashLen]
}
