// Package vectorgen generates LCM vector types: a typed vector with named
// row-index constants and accessors, its constant storage, and the LCM
// message schema that carries it.
package vectorgen

import (
	"errors"
)

// Target selects the emitted language convention.
type Target string

const (
	TargetCpp Target = "cpp"
	TargetGo  Target = "go"
)

// Valid reports whether t is a known target.
func (t Target) Valid() bool {
	return t == TargetCpp || t == TargetGo
}

// ArtifactKind names one of the three generated files.
type ArtifactKind string

const (
	ArtifactType    ArtifactKind = "type"    // indices, class, accessors, encode/decode
	ArtifactStorage ArtifactKind = "storage" // constant storage
	ArtifactSchema  ArtifactKind = "schema"  // LCM struct definition
)

var (
	ErrEmptyTitle        = errors.New("title must contain at least one word")
	ErrNoFields          = errors.New("at least one field is required")
	ErrDuplicateConstant = errors.New("fields normalize to the same constant")
	ErrReservedName      = errors.New("field name is reserved")
	ErrUnknownTarget     = errors.New("unknown target")
)

// Request is the immutable input to one generation run.
type Request struct {
	Title      string   // title phrase, e.g. "Driving Command"
	Fields     []string // ordered field names
	HeaderDir  string   // destination for type and storage artifacts
	LcmtypeDir string   // destination for the schema artifact
	Target     Target
	Generator  string // shown in the "do not edit" banner
	Project    ProjectOptions
}

// ProjectOptions carries the consuming build's conventions.
type ProjectOptions struct {
	LCMPackage string // LCM package and C++ namespace of the message
	Cpp        CppOptions
	Go         GoOptions
}

// CppOptions controls the cpp target.
type CppOptions struct {
	Namespaces            []string // outermost first
	ExportMacro           string   // e.g. DRAKECARS_EXPORT; empty for none
	ExportHeader          string   // header defining ExportMacro; empty for none
	IncludePrefix         string   // include path of the generated header's directory
	LcmtypesIncludePrefix string   // include path of lcm-gen's C++ headers
}

// GoOptions controls the go target.
type GoOptions struct {
	Package         string // package clause of the generated files
	LcmtypesImport  string // import path of lcm-gen's Go message types
	LcmtypesPackage string // local name for LcmtypesImport
}

// DefaultProjectOptions returns the drake Cars conventions.
func DefaultProjectOptions() ProjectOptions {
	return ProjectOptions{
		LCMPackage: "drake",
		Cpp: CppOptions{
			Namespaces:            []string{"drake", "cars"},
			ExportMacro:           "DRAKECARS_EXPORT",
			ExportHeader:          "drake/drakeCars_export.h",
			IncludePrefix:         "drake/examples/Cars/gen",
			LcmtypesIncludePrefix: "lcmtypes/drake",
		},
		Go: GoOptions{
			Package:         "gen",
			LcmtypesImport:  "lcmtypes",
			LcmtypesPackage: "lcmtypes",
		},
	}
}

// GeneratedFile is one rendered artifact.
type GeneratedFile struct {
	Kind    ArtifactKind
	Path    string
	Content string
}

// GeneratorResult holds the three artifacts in write order.
type GeneratorResult struct {
	Naming *NamingContext
	Files  []GeneratedFile
}

// File returns the artifact of the given kind, or nil.
func (r *GeneratorResult) File(kind ArtifactKind) *GeneratedFile {
	for i := range r.Files {
		if r.Files[i].Kind == kind {
			return &r.Files[i]
		}
	}
	return nil
}
