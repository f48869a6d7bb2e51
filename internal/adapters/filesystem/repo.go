package filesystem

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/example/lcmvec/internal/ports/secondary"
)

// GitLocator implements secondary.RepoLocator with the git CLI.
type GitLocator struct{}

// NewGitLocator creates a new git repository locator.
func NewGitLocator() *GitLocator {
	return &GitLocator{}
}

// TopLevel returns the root of the git work tree containing dir.
func (l *GitLocator) TopLevel(ctx context.Context, dir string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--show-toplevel")
	cmd.Dir = dir

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse failed in %s: %w", dir, err)
	}

	top := strings.TrimSpace(string(output))
	if top == "" {
		return "", fmt.Errorf("git rev-parse returned no top level for %s", dir)
	}
	return top, nil
}

// Ensure GitLocator implements the interface
var _ secondary.RepoLocator = (*GitLocator)(nil)
