package secondary

import "context"

// ArtifactWriter defines the secondary port for generated file storage.
type ArtifactWriter interface {
	// WriteArtifact replaces the file at path with content, creating parent
	// directories as needed.
	WriteArtifact(ctx context.Context, path string, content []byte) error

	// ReadArtifact returns the current content at path. A missing file
	// yields an error matching fs.ErrNotExist.
	ReadArtifact(ctx context.Context, path string) ([]byte, error)
}

// RepoLocator finds the version-control root enclosing a directory.
type RepoLocator interface {
	// TopLevel returns the absolute path of the repository root containing dir.
	TopLevel(ctx context.Context, dir string) (string, error)
}
