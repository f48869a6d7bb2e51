// Package vectorgen provides templates for LCM vector code generation.
//
// Each artifact template is a set of {{define}} blocks. The generator executes
// the blocks in a fixed order, trims surrounding newlines from each fragment
// and appends a fixed number of newlines, so the layout of the output is
// decided in Go rather than by template whitespace.
package vectorgen

import (
	"embed"
	"fmt"
	"text/template"
	"unicode"
	"unicode/utf8"
)

//go:embed cpp/*.tmpl go/*.tmpl lcm/*.tmpl
var vectorTemplates embed.FS

// Template files, relative to the embedded root.
const (
	CppHeader  = "cpp/header.h.tmpl"
	CppStorage = "cpp/storage.cc.tmpl"
	GoVector   = "go/vector.go.tmpl"
	GoStorage  = "go/storage.go.tmpl"
	LcmSchema  = "lcm/schema.lcm.tmpl"
)

// GetTemplate returns the content of an artifact template.
func GetTemplate(name string) (string, error) {
	content, err := vectorTemplates.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// Parse reads and parses an artifact template with TemplateFuncs installed.
func Parse(name string) (*template.Template, error) {
	content, err := GetTemplate(name)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.New(name).Funcs(TemplateFuncs()).Parse(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return tmpl, nil
}

// TemplateFuncs returns the template function map for vector templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"lowerFirst": lowerFirst,
		"reverse":    reverse,
	}
}

// reverse returns a reversed copy, used to close namespaces innermost first.
func reverse(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[len(in)-1-i] = s
	}
	return out
}

// lowerFirst returns s with its first letter lower-cased.
// e.g., "DrivingCommand" -> "drivingCommand"
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
