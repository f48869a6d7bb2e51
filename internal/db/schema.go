package db

// SchemaSQL is the complete schema of the generation manifest.
//
// This is the single source of truth for the manifest tables. Repository
// tests load it through GetSchemaSQL() so that a column referenced in code
// but missing here fails with "no such column" at test time.
//
// When adding columns or tables:
//  1. Add a migration in migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- One row per successful generation run
CREATE TABLE IF NOT EXISTS generation_runs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	fields TEXT NOT NULL, -- JSON array, in row order
	target TEXT NOT NULL CHECK (target IN ('cpp', 'go')),
	generator TEXT NOT NULL,
	created_at TEXT NOT NULL
);

-- Files written by a run
CREATE TABLE IF NOT EXISTS generated_artifacts (
	run_id TEXT NOT NULL,
	kind TEXT NOT NULL CHECK (kind IN ('type', 'storage', 'schema')),
	path TEXT NOT NULL,
	sha256 TEXT NOT NULL,
	size INTEGER NOT NULL,
	PRIMARY KEY (run_id, kind),
	FOREIGN KEY (run_id) REFERENCES generation_runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_generation_runs_created_at ON generation_runs(created_at);
CREATE INDEX IF NOT EXISTS idx_generated_artifacts_path ON generated_artifacts(path);
`

// GetSchemaSQL returns the authoritative schema for tests.
func GetSchemaSQL() string {
	return SchemaSQL
}
