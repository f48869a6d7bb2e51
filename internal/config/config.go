package config

import (
	"errors"
	"fmt"
	"go/token"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/example/lcmvec/internal/vectorgen"
)

// FileName is the project configuration file looked up in the working directory.
const FileName = ".lcmvec.yaml"

// Config represents the project configuration.
// Unset keys fall back to vectorgen.DefaultProjectOptions.
type Config struct {
	Target     string    `yaml:"target,omitempty"`      // "cpp" or "go"
	HeaderDir  string    `yaml:"header_dir,omitempty"`  // default --header-dir
	LcmtypeDir string    `yaml:"lcmtype_dir,omitempty"` // default --lcmtype-dir
	LCMPackage string    `yaml:"lcm_package,omitempty"`
	Generator  string    `yaml:"generator,omitempty"` // banner override
	Manifest   string    `yaml:"manifest,omitempty"`  // SQLite ledger path
	Cpp        CppConfig `yaml:"cpp,omitempty"`
	Go         GoConfig  `yaml:"go,omitempty"`
}

// CppConfig overrides the cpp target conventions.
// Pointers distinguish "unset" from "set to empty".
type CppConfig struct {
	Namespaces            *[]string `yaml:"namespaces,omitempty"`
	ExportMacro           *string   `yaml:"export_macro,omitempty"`
	ExportHeader          *string   `yaml:"export_header,omitempty"`
	IncludePrefix         *string   `yaml:"include_prefix,omitempty"`
	LcmtypesIncludePrefix *string   `yaml:"lcmtypes_include_prefix,omitempty"`
}

// GoConfig overrides the go target conventions.
type GoConfig struct {
	Package         string `yaml:"package,omitempty"`
	LcmtypesImport  string `yaml:"lcmtypes_import,omitempty"`
	LcmtypesPackage string `yaml:"lcmtypes_package,omitempty"`
}

// LoadConfig reads .lcmvec.yaml from the specified directory.
// A missing file is not an error: it yields an empty Config.
func LoadConfig(dir string) (*Config, error) {
	cfg, err := LoadFile(filepath.Join(dir, FileName))
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// LoadFile reads a configuration file at an explicit path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.Target != "" && !vectorgen.Target(cfg.Target).Valid() {
		return nil, fmt.Errorf("config %s: %w %q", path, vectorgen.ErrUnknownTarget, cfg.Target)
	}
	if err := cfg.validateGo(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}

// SaveConfig writes .lcmvec.yaml to directory.
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Default returns a Config spelling out every built-in convention.
func Default() *Config {
	d := vectorgen.DefaultProjectOptions()
	namespaces := d.Cpp.Namespaces
	return &Config{
		Target:     string(vectorgen.TargetCpp),
		HeaderDir:  ".",
		LcmtypeDir: ".",
		LCMPackage: d.LCMPackage,
		Cpp: CppConfig{
			Namespaces:            &namespaces,
			ExportMacro:           &d.Cpp.ExportMacro,
			ExportHeader:          &d.Cpp.ExportHeader,
			IncludePrefix:         &d.Cpp.IncludePrefix,
			LcmtypesIncludePrefix: &d.Cpp.LcmtypesIncludePrefix,
		},
		Go: GoConfig{
			Package:         d.Go.Package,
			LcmtypesImport:  d.Go.LcmtypesImport,
			LcmtypesPackage: d.Go.LcmtypesPackage,
		},
	}
}

// ProjectOptions layers the configuration over the built-in conventions.
func (c *Config) ProjectOptions() vectorgen.ProjectOptions {
	opts := vectorgen.DefaultProjectOptions()

	if c.LCMPackage != "" {
		opts.LCMPackage = c.LCMPackage
	}

	if c.Cpp.Namespaces != nil {
		opts.Cpp.Namespaces = append([]string(nil), (*c.Cpp.Namespaces)...)
	}
	setString(&opts.Cpp.ExportMacro, c.Cpp.ExportMacro)
	setString(&opts.Cpp.ExportHeader, c.Cpp.ExportHeader)
	setString(&opts.Cpp.IncludePrefix, c.Cpp.IncludePrefix)
	setString(&opts.Cpp.LcmtypesIncludePrefix, c.Cpp.LcmtypesIncludePrefix)

	if c.Go.Package != "" {
		opts.Go.Package = c.Go.Package
	}
	if c.Go.LcmtypesImport != "" {
		opts.Go.LcmtypesImport = c.Go.LcmtypesImport
		if c.Go.LcmtypesPackage == "" {
			opts.Go.LcmtypesPackage = path.Base(c.Go.LcmtypesImport)
		}
	}
	if c.Go.LcmtypesPackage != "" {
		opts.Go.LcmtypesPackage = c.Go.LcmtypesPackage
	}

	return opts
}

// validateGo checks that every Go package name, given or derived from
// go.lcmtypes_import, is an identifier.
func (c *Config) validateGo() error {
	if c.Go.Package != "" && !token.IsIdentifier(c.Go.Package) {
		return fmt.Errorf("go.package %q is not a Go identifier", c.Go.Package)
	}
	if c.Go.LcmtypesPackage != "" {
		if !token.IsIdentifier(c.Go.LcmtypesPackage) {
			return fmt.Errorf("go.lcmtypes_package %q is not a Go identifier", c.Go.LcmtypesPackage)
		}
		return nil
	}
	if c.Go.LcmtypesImport != "" {
		if base := path.Base(c.Go.LcmtypesImport); !token.IsIdentifier(base) {
			return fmt.Errorf("go.lcmtypes_import %q ends in %q, which is not a Go identifier: set go.lcmtypes_package", c.Go.LcmtypesImport, base)
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
