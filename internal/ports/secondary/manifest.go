package secondary

import "context"

// RunRecord represents one generation run as stored in the manifest.
type RunRecord struct {
	ID        string
	Title     string
	Fields    []string // in row order
	Target    string
	Generator string
	CreatedAt string // RFC3339
	Artifacts []*ArtifactRecord
}

// ArtifactRecord represents one file written by a run.
type ArtifactRecord struct {
	RunID  string
	Kind   string // "type", "storage" or "schema"
	Path   string
	SHA256 string
	Size   int64
}

// ManifestRepository defines the secondary port for the generation ledger.
type ManifestRepository interface {
	// RecordRun persists a run and its artifacts atomically.
	RecordRun(ctx context.Context, run *RunRecord) error

	// ListRuns returns the most recent runs first, with their artifacts.
	// A limit of zero or less returns every run.
	ListRuns(ctx context.Context, limit int) ([]*RunRecord, error)

	// LatestForPath returns the newest artifact record written to path, or nil.
	LatestForPath(ctx context.Context, path string) (*ArtifactRecord, error)
}
