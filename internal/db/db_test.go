package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_CreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "lcmvec.db")

	database, err := Open(path)
	require.NoError(t, err)
	defer database.Close()

	var version int
	require.NoError(t, database.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version))
	require.Equal(t, LatestVersion(), version)

	for _, table := range []string{"generation_runs", "generated_artifacts"} {
		var n int
		err := database.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name = ?", table).Scan(&n)
		require.NoError(t, err)
		require.Equalf(t, 1, n, "table %s", table)
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lcmvec.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	var applied int
	require.NoError(t, second.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&applied))
	require.Equal(t, len(migrations), applied)
}

func TestOpen_EnforcesForeignKeys(t *testing.T) {
	database, err := Open(filepath.Join(t.TempDir(), "lcmvec.db"))
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec("INSERT INTO generated_artifacts (run_id, kind, path, sha256, size) VALUES ('nope', 'type', 'a.h', 'x', 1)")
	require.Error(t, err, "artifact without a run is rejected")

	_, err = database.Exec("INSERT INTO generation_runs (id, title, fields, target, generator, created_at) VALUES ('r1', 'Car', '[\"x\"]', 'cpp', 'lcmvec', '2026-01-01T00:00:00Z')")
	require.NoError(t, err)
	_, err = database.Exec("INSERT INTO generated_artifacts (run_id, kind, path, sha256, size) VALUES ('r1', 'type', 'car.h', 'x', 1)")
	require.NoError(t, err)

	_, err = database.Exec("DELETE FROM generation_runs WHERE id = 'r1'")
	require.NoError(t, err)

	var n int
	require.NoError(t, database.QueryRow("SELECT COUNT(*) FROM generated_artifacts").Scan(&n))
	require.Zero(t, n, "artifacts cascade with their run")
}
