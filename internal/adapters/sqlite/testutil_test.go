// Package sqlite_test contains integration tests for SQLite repositories.
//
// setupTestDB is the single point where the schema is loaded for tests.
// It uses db.GetSchemaSQL() so tests run against the authoritative schema.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/lcmvec/internal/db"
	"github.com/example/lcmvec/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every connection to :memory: is a separate database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedRun records a cpp run of title with one artifact per kind.
func seedRun(t *testing.T, repo secondary.ManifestRepository, id, createdAt, sum string) *secondary.RunRecord {
	t.Helper()
	run := &secondary.RunRecord{
		ID:        id,
		Title:     "Driving Command",
		Fields:    []string{"steering_angle", "throttle"},
		Target:    "cpp",
		Generator: "lcmvec",
		CreatedAt: createdAt,
		Artifacts: []*secondary.ArtifactRecord{
			{RunID: id, Kind: "type", Path: "gen/driving_command.h", SHA256: sum, Size: 120},
			{RunID: id, Kind: "storage", Path: "gen/driving_command.cc", SHA256: sum, Size: 40},
			{RunID: id, Kind: "schema", Path: "lcmtypes/lcmt_driving_command_t.lcm", SHA256: sum, Size: 30},
		},
	}
	if err := repo.RecordRun(context.Background(), run); err != nil {
		t.Fatalf("failed to seed run: %v", err)
	}
	return run
}
