package vectorgen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/example/lcmvec/internal/lcmvector"
	vectortmpl "github.com/example/lcmvec/internal/templates/vectorgen"
)

// DefaultGenerator is the banner name used when a request names none.
const DefaultGenerator = "lcmvec"

// TemplateData is the typed context every template executes against.
type TemplateData struct {
	NamingContext
	Generator     string
	NumFields     int
	LCMPackage    string
	MessageGoName string // lcm-gen's Go name for lcmt_<snake>_t
	Cpp           CppOptions
	Go            GoOptions
	Schema        []lcmvector.SchemaField
}

// fieldData is the context of a per-field section.
type fieldData struct {
	*TemplateData
	Field FieldName
}

// slotData is the context of a per-schema-slot section.
type slotData struct {
	*TemplateData
	Slot lcmvector.SchemaField
}

type repeat int

const (
	once      repeat = iota
	eachField        // once per field, in row order
	eachSlot         // once per schema slot, timestamp first
)

// section is one {{define}} block of an artifact template.
type section struct {
	name  string
	each  repeat
	after int  // newlines appended after the trimmed fragment
	blank bool // emit the newlines even when the fragment is empty
}

type artifactSpec struct {
	kind     ArtifactKind
	template string
	path     func(req *Request, nc *NamingContext) string
	sections []section
	gofmt    bool
}

var cppHeaderSections = []section{
	{name: "preamble", after: 2},
	{name: "indices_begin", after: 1},
	{name: "indices_field", each: eachField, after: 1},
	{name: "indices_end", after: 2},
	{name: "class_begin", after: 2},
	{name: "default_ctor", after: 2},
	{name: "accessor_begin", after: 1},
	{name: "accessor", each: eachField, after: 1},
	{name: "accessor_end", after: 2},
	{name: "class_end", after: 2},
	{name: "encode_begin", after: 1},
	{name: "encode_field", each: eachField, after: 1},
	{name: "encode_end", after: 2},
	{name: "decode_begin", after: 1},
	{name: "decode_field", each: eachField, after: 1},
	{name: "decode_end", after: 2},
	{name: "postamble", after: 1},
}

var cppStorageSections = []section{
	{name: "preamble", after: 2},
	{name: "storage_count", after: 1},
	{name: "storage_field", each: eachField, after: 1},
	{name: "blank", after: 1, blank: true},
	{name: "postamble", after: 1},
}

var schemaSections = []section{
	{name: "preamble", after: 1},
	{name: "slot", each: eachSlot, after: 1},
	{name: "postamble", after: 1},
}

var goVectorSections = []section{
	{name: "preamble", after: 2},
	{name: "indices_begin", after: 1},
	{name: "indices_field", each: eachField, after: 1},
	{name: "indices_end", after: 2},
	{name: "class_begin", after: 2},
	{name: "default_ctor", after: 2},
	{name: "accessor", each: eachField, after: 2},
	{name: "encode_begin", after: 1},
	{name: "encode_field", each: eachField, after: 1},
	{name: "encode_end", after: 2},
	{name: "decode_begin", after: 1},
	{name: "decode_field", each: eachField, after: 1},
	{name: "decode_end", after: 1},
}

var goStorageSections = []section{
	{name: "preamble", after: 2},
	{name: "storage_begin", after: 1},
	{name: "storage_field", each: eachField, after: 1},
	{name: "storage_end", after: 1},
}

func headerPath(ext string) func(*Request, *NamingContext) string {
	return func(req *Request, nc *NamingContext) string {
		return filepath.Join(dirOrDot(req.HeaderDir), nc.Snake+ext)
	}
}

func schemaPath(req *Request, nc *NamingContext) string {
	return filepath.Join(dirOrDot(req.LcmtypeDir), "lcmt_"+nc.Snake+"_t.lcm")
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}

// artifactSpecs lists the three artifacts of each target in write order.
var artifactSpecs = map[Target][]artifactSpec{
	TargetCpp: {
		{kind: ArtifactType, template: vectortmpl.CppHeader, path: headerPath(".h"), sections: cppHeaderSections},
		{kind: ArtifactStorage, template: vectortmpl.CppStorage, path: headerPath(".cc"), sections: cppStorageSections},
		{kind: ArtifactSchema, template: vectortmpl.LcmSchema, path: schemaPath, sections: schemaSections},
	},
	TargetGo: {
		{kind: ArtifactType, template: vectortmpl.GoVector, path: headerPath(".go"), sections: goVectorSections, gofmt: true},
		{kind: ArtifactStorage, template: vectortmpl.GoStorage, path: headerPath("_indices.go"), sections: goStorageSections, gofmt: true},
		{kind: ArtifactSchema, template: vectortmpl.LcmSchema, path: schemaPath, sections: schemaSections},
	},
}

// parsedTemplates holds every artifact template, parsed once.
var parsedTemplates = mustParse(
	vectortmpl.CppHeader,
	vectortmpl.CppStorage,
	vectortmpl.GoVector,
	vectortmpl.GoStorage,
	vectortmpl.LcmSchema,
)

func mustParse(names ...string) map[string]*template.Template {
	out := make(map[string]*template.Template, len(names))
	for _, name := range names {
		out[name] = template.Must(vectortmpl.Parse(name))
	}
	return out
}

// Generator renders the artifacts of a request.
type Generator struct {
	templates map[string]*template.Template
}

// NewGenerator creates a new Generator.
func NewGenerator() *Generator {
	return &Generator{
		templates: parsedTemplates,
	}
}

// Generate derives the naming context of req and renders its three
// artifacts in memory. Nothing is written.
func (g *Generator) Generate(req *Request) (*GeneratorResult, error) {
	specs, ok := artifactSpecs[req.Target]
	if !ok {
		return nil, fmt.Errorf("%w %q (valid: cpp, go)", ErrUnknownTarget, req.Target)
	}

	nc, err := NewNamingContext(req.Title, req.Fields, req.Target)
	if err != nil {
		return nil, err
	}
	data := newTemplateData(req, nc)

	result := &GeneratorResult{Naming: nc}
	for _, spec := range specs {
		content, err := g.render(spec, data)
		if err != nil {
			return nil, fmt.Errorf("failed to render %s: %w", spec.template, err)
		}
		result.Files = append(result.Files, GeneratedFile{
			Kind:    spec.kind,
			Path:    spec.path(req, nc),
			Content: content,
		})
	}

	return result, nil
}

func newTemplateData(req *Request, nc *NamingContext) *TemplateData {
	generator := req.Generator
	if generator == "" {
		generator = DefaultGenerator
	}
	return &TemplateData{
		NamingContext: *nc,
		Generator:     generator,
		NumFields:     nc.NumCoordinates(),
		LCMPackage:    req.Project.LCMPackage,
		MessageGoName: ToPascalSegments("lcmt_" + nc.Snake + "_t"),
		Cpp:           req.Project.Cpp,
		Go:            req.Project.Go,
		Schema:        lcmvector.Schema(nc.Layout),
	}
}

// render executes the sections of one artifact in order.
func (g *Generator) render(spec artifactSpec, data *TemplateData) (string, error) {
	tmpl, ok := g.templates[spec.template]
	if !ok {
		return "", fmt.Errorf("template %s not loaded", spec.template)
	}

	var out strings.Builder
	for _, s := range spec.sections {
		switch s.each {
		case eachField:
			for _, f := range data.Fields {
				if err := put(&out, tmpl, s, fieldData{TemplateData: data, Field: f}); err != nil {
					return "", err
				}
			}
		case eachSlot:
			for _, slot := range data.Schema {
				if err := put(&out, tmpl, s, slotData{TemplateData: data, Slot: slot}); err != nil {
					return "", err
				}
			}
		default:
			if err := put(&out, tmpl, s, data); err != nil {
				return "", err
			}
		}
	}

	if !spec.gofmt {
		return out.String(), nil
	}
	formatted, err := format.Source([]byte(out.String()))
	if err != nil {
		return "", fmt.Errorf("generated Go does not parse: %w", err)
	}
	return string(formatted), nil
}

// put executes one section, strips its surrounding newlines and appends
// s.after newlines.
func put(out *strings.Builder, tmpl *template.Template, s section, data any) error {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, s.name, data); err != nil {
		return fmt.Errorf("section %s: %w", s.name, err)
	}
	frag := strings.Trim(buf.String(), "\n")
	// An empty optional section collapses with its newlines, so a bare
	// project (no namespaces, no export header) has no blank-line runs.
	// Sections that must always emit their newlines set blank.
	if frag == "" && !s.blank {
		return nil
	}
	out.WriteString(frag)
	out.WriteString(strings.Repeat("\n", s.after))
	return nil
}
