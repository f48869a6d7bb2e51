// Package wire provides dependency injection for the lcmvec CLI.
package wire

import (
	"go.uber.org/zap"

	"github.com/example/lcmvec/internal/adapters/filesystem"
	"github.com/example/lcmvec/internal/adapters/sqlite"
	"github.com/example/lcmvec/internal/app"
	"github.com/example/lcmvec/internal/db"
	"github.com/example/lcmvec/internal/ports/primary"
	"github.com/example/lcmvec/internal/ports/secondary"
)

// GenerateService builds a GenerateService writing to the local filesystem.
// When manifestPath is set, runs are recorded in the SQLite manifest there.
// The returned cleanup closes the manifest and must be called once.
func GenerateService(manifestPath string, logger *zap.Logger) (primary.GenerateService, func(), error) {
	writer := filesystem.NewArtifactWriter()
	locator := filesystem.NewGitLocator()

	if manifestPath == "" {
		// A nil interface, not a typed nil repository, disables recording.
		var manifest secondary.ManifestRepository
		return app.NewGenerateService(writer, locator, manifest, logger), func() {}, nil
	}

	database, err := db.Open(manifestPath)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("opened manifest", zap.String("path", manifestPath))

	manifest := sqlite.NewManifestRepository(database)
	cleanup := func() {
		if err := database.Close(); err != nil {
			logger.Warn("failed to close manifest", zap.Error(err))
		}
	}
	return app.NewGenerateService(writer, locator, manifest, logger), cleanup, nil
}
