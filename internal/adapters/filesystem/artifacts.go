// Package filesystem contains filesystem-based adapter implementations.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/lcmvec/internal/ports/secondary"
)

// ArtifactWriter implements secondary.ArtifactWriter on the local filesystem.
type ArtifactWriter struct{}

// NewArtifactWriter creates a new filesystem artifact writer.
func NewArtifactWriter() *ArtifactWriter {
	return &ArtifactWriter{}
}

// WriteArtifact creates or truncates path and writes content to it.
// Parent directories are created as needed.
func (w *ArtifactWriter) WriteArtifact(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if _, err := f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	return nil
}

// ReadArtifact returns the content of path.
func (w *ArtifactWriter) ReadArtifact(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// Ensure ArtifactWriter implements the interface
var _ secondary.ArtifactWriter = (*ArtifactWriter)(nil)
