package filesystem_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/lcmvec/internal/adapters/filesystem"
)

func TestGitLocator_TopLevel(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	root := t.TempDir()
	gitInit := exec.Command("git", "init", "-q")
	gitInit.Dir = root
	require.NoError(t, gitInit.Run())

	sub := filepath.Join(root, "tools", "vector_gen")
	require.NoError(t, os.MkdirAll(sub, 0755))

	top, err := filesystem.NewGitLocator().TopLevel(context.Background(), sub)
	require.NoError(t, err)

	// TempDir may sit behind a symlink, e.g. /tmp on macOS.
	want, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(top)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestGitLocator_OutsideRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	// Keep git from walking up into an enclosing checkout.
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))

	_, err := filesystem.NewGitLocator().TopLevel(context.Background(), dir)
	require.ErrorContains(t, err, "git rev-parse failed")
}
