package wire

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/example/lcmvec/internal/app"
	"github.com/example/lcmvec/internal/ports/primary"
	"github.com/example/lcmvec/internal/vectorgen"
)

func TestGenerateService_WithoutManifest(t *testing.T) {
	svc, cleanup, err := GenerateService("", zaptest.NewLogger(t))
	require.NoError(t, err)
	defer cleanup()

	_, err = svc.ListRuns(context.Background(), 0)
	require.ErrorIs(t, err, app.ErrNoManifest)
}

func TestGenerateService_RecordsToManifest(t *testing.T) {
	dir := t.TempDir()
	manifestPath := filepath.Join(dir, "state", "lcmvec.db")

	svc, cleanup, err := GenerateService(manifestPath, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer cleanup()

	req := &vectorgen.Request{
		Title:      "Simple Car State",
		Fields:     []string{"x", "y", "heading", "velocity"},
		HeaderDir:  filepath.Join(dir, "gen"),
		LcmtypeDir: filepath.Join(dir, "lcmtypes"),
		Target:     vectorgen.TargetCpp,
		Generator:  "tools/lcmvec",
		Project:    vectorgen.DefaultProjectOptions(),
	}
	result, err := svc.Generate(context.Background(), req, primary.GenerateOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, result.RunID)

	for _, f := range result.Files {
		data, err := os.ReadFile(f.Path)
		require.NoError(t, err)
		require.Equal(t, f.Content, string(data))
	}

	runs, err := svc.ListRuns(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, result.RunID, runs[0].ID)
	require.Equal(t, []string{"x", "y", "heading", "velocity"}, runs[0].Fields)
	require.Len(t, runs[0].Artifacts, 3)
}
