package primary

import (
	"context"

	"github.com/example/lcmvec/internal/vectorgen"
)

// GenerateService defines the primary port for vector code generation.
type GenerateService interface {
	// Generate renders the artifacts of req and, depending on opts.Mode,
	// writes them, returns them unwritten, or compares them with disk.
	Generate(ctx context.Context, req *vectorgen.Request, opts GenerateOptions) (*GenerateResult, error)

	// ListRuns returns recorded generation runs, newest first.
	ListRuns(ctx context.Context, limit int) ([]*RunSummary, error)
}

// Mode selects what Generate does with the rendered artifacts.
type Mode int

const (
	ModeWrite  Mode = iota // write all three artifacts
	ModeDryRun             // render only
	ModeCheck              // compare with the files on disk
)

// GenerateOptions contains the per-invocation options of Generate.
type GenerateOptions struct {
	Mode Mode
}

// GenerateResult represents the outcome of one Generate call.
type GenerateResult struct {
	RunID     string // set when the run was recorded in the manifest
	Generator string // banner name the artifacts were rendered with
	Naming    *vectorgen.NamingContext
	Files     []vectorgen.GeneratedFile
	Drift     []DriftEntry // ModeCheck only
}

// DriftEntry names one artifact whose file on disk differs from the render.
type DriftEntry struct {
	Path   string
	Reason string // "missing" or "stale"

	// Set for stale artifacts found in the manifest.
	LastRunID      string // run that last wrote Path
	EditedSinceRun bool   // file content differs from what that run wrote
}

// RunSummary represents a recorded generation run at the port boundary.
type RunSummary struct {
	ID        string
	Title     string
	Fields    []string
	Target    string
	Generator string
	CreatedAt string
	Artifacts []ArtifactSummary
}

// ArtifactSummary represents one recorded artifact.
type ArtifactSummary struct {
	Kind   string
	Path   string
	SHA256 string
	Size   int64
}
