// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/example/lcmvec/internal/ports/secondary"
)

// ManifestRepository implements secondary.ManifestRepository with SQLite.
type ManifestRepository struct {
	db *sql.DB
}

// NewManifestRepository creates a new SQLite manifest repository.
func NewManifestRepository(db *sql.DB) *ManifestRepository {
	return &ManifestRepository{db: db}
}

// RecordRun persists a run and its artifacts in one transaction.
func (r *ManifestRepository) RecordRun(ctx context.Context, run *secondary.RunRecord) error {
	fields, err := json.Marshal(run.Fields)
	if err != nil {
		return fmt.Errorf("failed to encode fields: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO generation_runs (id, title, fields, target, generator, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		run.ID, run.Title, string(fields), run.Target, run.Generator, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	for _, a := range run.Artifacts {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO generated_artifacts (run_id, kind, path, sha256, size) VALUES (?, ?, ?, ?, ?)",
			run.ID, a.Kind, a.Path, a.SHA256, a.Size,
		)
		if err != nil {
			return fmt.Errorf("failed to record artifact %s: %w", a.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// ListRuns returns runs newest first, each with its artifacts.
func (r *ManifestRepository) ListRuns(ctx context.Context, limit int) ([]*secondary.RunRecord, error) {
	query := "SELECT id, title, fields, target, generator, created_at FROM generation_runs ORDER BY created_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	var runs []*secondary.RunRecord
	for rows.Next() {
		var (
			run    secondary.RunRecord
			fields string
		)
		if err := rows.Scan(&run.ID, &run.Title, &fields, &run.Target, &run.Generator, &run.CreatedAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if err := json.Unmarshal([]byte(fields), &run.Fields); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to decode fields of run %s: %w", run.ID, err)
		}
		runs = append(runs, &run)
	}
	err = rows.Err()
	rows.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	// Artifacts are loaded after the run cursor is closed.
	for _, run := range runs {
		artifacts, err := r.listArtifacts(ctx, run.ID)
		if err != nil {
			return nil, err
		}
		run.Artifacts = artifacts
	}

	return runs, nil
}

// LatestForPath returns the newest artifact record written to path, or nil.
func (r *ManifestRepository) LatestForPath(ctx context.Context, path string) (*secondary.ArtifactRecord, error) {
	a := &secondary.ArtifactRecord{}
	err := r.db.QueryRowContext(ctx, `
		SELECT a.run_id, a.kind, a.path, a.sha256, a.size
		FROM generated_artifacts a
		JOIN generation_runs g ON g.id = a.run_id
		WHERE a.path = ?
		ORDER BY g.created_at DESC, g.rowid DESC
		LIMIT 1`,
		path,
	).Scan(&a.RunID, &a.Kind, &a.Path, &a.SHA256, &a.Size)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get artifact for %s: %w", path, err)
	}
	return a, nil
}

func (r *ManifestRepository) listArtifacts(ctx context.Context, runID string) ([]*secondary.ArtifactRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT run_id, kind, path, sha256, size FROM generated_artifacts WHERE run_id = ? ORDER BY CASE kind WHEN 'type' THEN 0 WHEN 'storage' THEN 1 ELSE 2 END",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []*secondary.ArtifactRecord
	for rows.Next() {
		a := &secondary.ArtifactRecord{}
		if err := rows.Scan(&a.RunID, &a.Kind, &a.Path, &a.SHA256, &a.Size); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}

	return artifacts, rows.Err()
}
