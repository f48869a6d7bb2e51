package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/lcmvec/internal/vectorgen"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Target != "" || cfg.Cpp.Namespaces != nil {
		t.Errorf("expected empty config, got %+v", cfg)
	}

	require.Equal(t, vectorgen.DefaultProjectOptions(), cfg.ProjectOptions())
}

func TestLoadConfig_Overrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
target: go
header_dir: gen/include
lcmtype_dir: gen/lcmtypes
lcm_package: robot
generator: tools/lcmvec
manifest: build/lcmvec.db
cpp:
  namespaces: [robot, state]
  export_macro: ""
  include_prefix: robot/gen
go:
  package: state
  lcmtypes_import: github.com/acme/robot/lcmtypes/robot
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, "go", cfg.Target)
	require.Equal(t, "gen/include", cfg.HeaderDir)
	require.Equal(t, "gen/lcmtypes", cfg.LcmtypeDir)
	require.Equal(t, "tools/lcmvec", cfg.Generator)
	require.Equal(t, "build/lcmvec.db", cfg.Manifest)

	opts := cfg.ProjectOptions()
	require.Equal(t, "robot", opts.LCMPackage)
	require.Equal(t, []string{"robot", "state"}, opts.Cpp.Namespaces)
	require.Equal(t, "", opts.Cpp.ExportMacro)
	require.Equal(t, "drake/drakeCars_export.h", opts.Cpp.ExportHeader, "unset keys keep defaults")
	require.Equal(t, "robot/gen", opts.Cpp.IncludePrefix)
	require.Equal(t, "state", opts.Go.Package)
	require.Equal(t, "github.com/acme/robot/lcmtypes/robot", opts.Go.LcmtypesImport)
	require.Equal(t, "robot", opts.Go.LcmtypesPackage)
}

func TestLoadConfig_EmptyNamespaces(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "cpp:\n  namespaces: []\n")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.Empty(t, cfg.ProjectOptions().Cpp.Namespaces)
}

func TestLoadConfig_InvalidTarget(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "target: rust\n")

	_, err := LoadConfig(dir)
	if !errors.Is(err, vectorgen.ErrUnknownTarget) {
		t.Errorf("expected ErrUnknownTarget, got %v", err)
	}
}

func TestLoadConfig_GoPackageNames(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"derived name with dash", "go:\n  lcmtypes_import: github.com/acme/lcmtypes-go\n", `ends in "lcmtypes-go"`},
		{"invalid explicit package", "go:\n  package: gen-cars\n", `go.package "gen-cars"`},
		{"invalid lcmtypes package", "go:\n  lcmtypes_package: 1types\n", `go.lcmtypes_package "1types"`},
		{"explicit package rescues import", "go:\n  lcmtypes_import: github.com/acme/lcmtypes-go\n  lcmtypes_package: lcmtypes\n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)

			cfg, err := LoadConfig(dir)
			if tt.wantErr == "" {
				require.NoError(t, err)
				require.Equal(t, "lcmtypes", cfg.ProjectOptions().Go.LcmtypesPackage)
				return
			}
			require.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestLoadConfig_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "cpp: [unterminated\n")

	_, err := LoadConfig(dir)
	require.ErrorContains(t, err, "failed to parse config")
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "failed to read config")
}

func TestSaveConfig_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "project")

	require.NoError(t, SaveConfig(dir, Default()))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	require.Equal(t, "cpp", cfg.Target)
	require.Equal(t, vectorgen.DefaultProjectOptions(), cfg.ProjectOptions())
}
