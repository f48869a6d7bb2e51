package app

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/example/lcmvec/internal/ports/primary"
	"github.com/example/lcmvec/internal/ports/secondary"
	"github.com/example/lcmvec/internal/vectorgen"
)

var (
	// ErrDrift is returned by a check when an artifact on disk differs from
	// what would be generated.
	ErrDrift = errors.New("generated artifacts are out of date")

	// ErrNoManifest is returned by ListRuns when no manifest is configured.
	ErrNoManifest = errors.New("no manifest configured")
)

// GenerateServiceImpl implements the GenerateService interface.
type GenerateServiceImpl struct {
	generator *vectorgen.Generator
	writer    secondary.ArtifactWriter
	locator   secondary.RepoLocator
	manifest  secondary.ManifestRepository // nil disables run recording
	logger    *zap.Logger

	now        func() time.Time
	newID      func() string
	executable func() (string, error)
	getwd      func() (string, error)
}

// NewGenerateService creates a new GenerateService with injected dependencies.
// manifest may be nil.
func NewGenerateService(
	writer secondary.ArtifactWriter,
	locator secondary.RepoLocator,
	manifest secondary.ManifestRepository,
	logger *zap.Logger,
) *GenerateServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GenerateServiceImpl{
		generator:  vectorgen.NewGenerator(),
		writer:     writer,
		locator:    locator,
		manifest:   manifest,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
		executable: os.Executable,
		getwd:      os.Getwd,
	}
}

// Generate renders all three artifacts before touching the filesystem.
// In write mode they are written in order with no rollback, then the run is
// recorded when a manifest is configured.
func (s *GenerateServiceImpl) Generate(ctx context.Context, req *vectorgen.Request, opts primary.GenerateOptions) (*primary.GenerateResult, error) {
	resolved := *req
	resolved.Generator = s.resolveGenerator(ctx, req.Generator)

	rendered, err := s.generator.Generate(&resolved)
	if err != nil {
		return nil, err
	}

	result := &primary.GenerateResult{
		Generator: resolved.Generator,
		Naming:    rendered.Naming,
		Files:     rendered.Files,
	}

	switch opts.Mode {
	case primary.ModeDryRun:
		return result, nil
	case primary.ModeCheck:
		return s.check(ctx, result)
	}

	for _, f := range result.Files {
		if err := s.writer.WriteArtifact(ctx, f.Path, []byte(f.Content)); err != nil {
			return nil, err
		}
		s.logger.Info("wrote artifact",
			zap.String("kind", string(f.Kind)),
			zap.String("path", f.Path),
			zap.Int("bytes", len(f.Content)))
	}

	if s.manifest != nil {
		id, err := s.record(ctx, &resolved, result.Files)
		if err != nil {
			return nil, fmt.Errorf("failed to record generation run: %w", err)
		}
		result.RunID = id
	}

	return result, nil
}

// ListRuns returns recorded generation runs, newest first.
func (s *GenerateServiceImpl) ListRuns(ctx context.Context, limit int) ([]*primary.RunSummary, error) {
	if s.manifest == nil {
		return nil, ErrNoManifest
	}

	records, err := s.manifest.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*primary.RunSummary, len(records))
	for i, r := range records {
		runs[i] = s.recordToSummary(r)
	}
	return runs, nil
}

// check compares every rendered artifact with the file on disk. Stale
// artifacts are traced to the last run that wrote them when a manifest is
// configured.
func (s *GenerateServiceImpl) check(ctx context.Context, result *primary.GenerateResult) (*primary.GenerateResult, error) {
	for _, f := range result.Files {
		current, err := s.writer.ReadArtifact(ctx, f.Path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			result.Drift = append(result.Drift, primary.DriftEntry{Path: f.Path, Reason: "missing"})
		case err != nil:
			return nil, err
		case !bytes.Equal(current, []byte(f.Content)):
			entry := primary.DriftEntry{Path: f.Path, Reason: "stale"}
			if err := s.traceLastWriter(ctx, &entry, current); err != nil {
				return nil, err
			}
			result.Drift = append(result.Drift, entry)
		}
	}

	if len(result.Drift) == 0 {
		s.logger.Debug("artifacts up to date", zap.Int("files", len(result.Files)))
		return result, nil
	}

	paths := make([]string, len(result.Drift))
	for i, d := range result.Drift {
		paths[i] = d.Path
		s.logger.Warn("artifact drift",
			zap.String("path", d.Path),
			zap.String("reason", d.Reason),
			zap.String("last_run", d.LastRunID))
	}
	return result, fmt.Errorf("%w: %s", ErrDrift, strings.Join(paths, ", "))
}

// traceLastWriter fills in the manifest's last run for a stale artifact and
// whether the file was changed after that run wrote it.
func (s *GenerateServiceImpl) traceLastWriter(ctx context.Context, entry *primary.DriftEntry, current []byte) error {
	if s.manifest == nil {
		return nil
	}
	rec, err := s.manifest.LatestForPath(ctx, entry.Path)
	if err != nil {
		return fmt.Errorf("failed to look up %s in manifest: %w", entry.Path, err)
	}
	if rec == nil {
		return nil
	}
	entry.LastRunID = rec.RunID
	entry.EditedSinceRun = rec.SHA256 != digest(current)
	return nil
}

func (s *GenerateServiceImpl) record(ctx context.Context, req *vectorgen.Request, files []vectorgen.GeneratedFile) (string, error) {
	run := &secondary.RunRecord{
		ID:        s.newID(),
		Title:     req.Title,
		Fields:    append([]string(nil), req.Fields...),
		Target:    string(req.Target),
		Generator: req.Generator,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	for _, f := range files {
		run.Artifacts = append(run.Artifacts, &secondary.ArtifactRecord{
			RunID:  run.ID,
			Kind:   string(f.Kind),
			Path:   f.Path,
			SHA256: digest([]byte(f.Content)),
			Size:   int64(len(f.Content)),
		})
	}

	if err := s.manifest.RecordRun(ctx, run); err != nil {
		return "", err
	}
	s.logger.Info("recorded generation run", zap.String("run_id", run.ID))
	return run.ID, nil
}

// resolveGenerator returns the name printed in artifact banners: the
// configured value, else this executable's path relative to the enclosing
// git repository, else DefaultGenerator. An executable outside the
// repository, such as a go run build cache, yields DefaultGenerator.
func (s *GenerateServiceImpl) resolveGenerator(ctx context.Context, configured string) string {
	if configured != "" {
		return configured
	}
	if s.locator == nil {
		return vectorgen.DefaultGenerator
	}

	exe, err := s.executable()
	if err != nil {
		s.logger.Debug("executable path unavailable", zap.Error(err))
		return vectorgen.DefaultGenerator
	}
	wd, err := s.getwd()
	if err != nil {
		return vectorgen.DefaultGenerator
	}
	top, err := s.locator.TopLevel(ctx, wd)
	if err != nil {
		s.logger.Debug("not inside a git repository", zap.String("dir", wd), zap.Error(err))
		return vectorgen.DefaultGenerator
	}

	rel, ok := relativeTo(top, exe)
	if !ok {
		s.logger.Debug("executable outside the repository", zap.String("executable", exe), zap.String("top", top))
		return vectorgen.DefaultGenerator
	}
	return rel
}

// relativeTo returns p relative to dir, and false when p is outside dir.
func relativeTo(dir, p string) (string, bool) {
	rel, err := filepath.Rel(dir, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// digest returns the hex sha256 of content.
func digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Helper methods

func (s *GenerateServiceImpl) recordToSummary(r *secondary.RunRecord) *primary.RunSummary {
	summary := &primary.RunSummary{
		ID:        r.ID,
		Title:     r.Title,
		Fields:    r.Fields,
		Target:    r.Target,
		Generator: r.Generator,
		CreatedAt: r.CreatedAt,
	}
	for _, a := range r.Artifacts {
		summary.Artifacts = append(summary.Artifacts, primary.ArtifactSummary{
			Kind:   a.Kind,
			Path:   a.Path,
			SHA256: a.SHA256,
			Size:   a.Size,
		})
	}
	return summary
}

// Ensure GenerateServiceImpl implements the interface
var _ primary.GenerateService = (*GenerateServiceImpl)(nil)
