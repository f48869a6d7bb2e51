package vectorgen

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/example/lcmvec/internal/lcmvector"
)

// NamingContext holds every name derived from a request.
type NamingContext struct {
	Camel          string // PascalCase type name: "DrivingCommand"
	Indices        string // index struct name: "DrivingCommandIndices"
	Snake          string // snake_case: "driving_command"
	ScreamingSnake string // channel name: "DRIVING_COMMAND"
	Fields         []FieldName
	Layout         *lcmvector.Layout
}

// FieldName holds the names derived from one field.
type FieldName struct {
	Name   string // as given: "steering_angle"
	KName  string // row constant: "kSteeringAngle"
	Pascal string // KName without the k: "SteeringAngle"
	Index  int    // row index
}

const (
	// timestampField is the leading schema slot.
	timestampField = "timestamp"
	// countConstant is the row count constant emitted beside the field indices.
	countConstant = "kNumCoordinates"
)

// goFixedMethods are the methods the go target emits on every vector type.
var goFixedMethods = []string{"Size", "GetAtIndex", "SetAtIndex", "FieldName"}

// goReservedConstants are <Camel><suffix> constants emitted beside the field
// indices <Camel><Pascal>.
var goReservedConstants = map[string]bool{
	"Channel":        true,
	"NumCoordinates": true,
}

// NewNamingContext derives all names from a title phrase and field list.
// Fields whose row constants collide are rejected.
func NewNamingContext(title string, fields []string, target Target) (*NamingContext, error) {
	words := strings.Fields(title)
	if len(words) == 0 {
		return nil, ErrEmptyTitle
	}
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	nc := &NamingContext{
		Camel:          ToCamel(words),
		Snake:          ToSnake(words),
		ScreamingSnake: ToScreamingSnake(words),
		Fields:         make([]FieldName, 0, len(fields)),
	}
	nc.Indices = nc.Camel + "Indices"

	seen := make(map[string]string, len(fields))
	for i, f := range fields {
		if f == timestampField {
			return nil, fmt.Errorf("%w: %q is the message timestamp", ErrReservedName, f)
		}
		kname := ToKName(f)
		if kname == countConstant {
			return nil, fmt.Errorf("%w: %q becomes the row count constant %s", ErrDuplicateConstant, f, kname)
		}
		if prev, ok := seen[kname]; ok {
			return nil, fmt.Errorf("%w: %q and %q both become %s", ErrDuplicateConstant, prev, f, kname)
		}
		seen[kname] = f

		pascal := strings.TrimPrefix(kname, "k")
		if target == TargetGo && goReservedConstants[pascal] {
			return nil, fmt.Errorf("%w: %q collides with the generated %s constant", ErrReservedName, f, nc.Camel+pascal)
		}
		nc.Fields = append(nc.Fields, FieldName{
			Name:   f,
			KName:  kname,
			Pascal: pascal,
			Index:  i,
		})
	}

	if target == TargetGo {
		if err := checkGoMethods(nc.Fields); err != nil {
			return nil, err
		}
	}

	layout, err := lcmvector.NewLayout(fields)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDuplicateConstant, err)
	}
	nc.Layout = layout

	return nc, nil
}

// checkGoMethods rejects fields whose accessor pair (Pascal and SetPascal)
// redeclares a fixed method or another field's accessor.
func checkGoMethods(fields []FieldName) error {
	owner := make(map[string]string, len(goFixedMethods)+2*len(fields))
	for _, m := range goFixedMethods {
		owner[m] = "the vector type"
	}
	for _, f := range fields {
		for _, m := range []string{f.Pascal, "Set" + f.Pascal} {
			if prev, ok := owner[m]; ok {
				return fmt.Errorf("%w: %q declares method %s, already declared by %s", ErrReservedName, f.Name, m, prev)
			}
			owner[m] = fmt.Sprintf("field %q", f.Name)
		}
	}
	return nil
}

// NumCoordinates returns the field count.
func (nc *NamingContext) NumCoordinates() int {
	return len(nc.Fields)
}

// Name transformation helpers

// ToCamel capitalizes the first letter of each word and concatenates them.
// Interior letters keep their case.
func ToCamel(words []string) string {
	var b strings.Builder
	for _, w := range words {
		b.WriteString(capitalize(w))
	}
	return b.String()
}

// ToSnake lower-cases each word and joins them with underscores.
func ToSnake(words []string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToLower(w)
	}
	return strings.Join(out, "_")
}

// ToScreamingSnake upper-cases each word and joins them with underscores.
func ToScreamingSnake(words []string) string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToUpper(w)
	}
	return strings.Join(out, "_")
}

// ToPascalSegments capitalizes each underscore-separated segment of s and
// concatenates them: "pos_x" -> "PosX".
func ToPascalSegments(s string) string {
	return ToCamel(strings.Split(s, "_"))
}

// ToKName returns the row constant name of a field: "pos_x" -> "kPosX".
func ToKName(field string) string {
	return "k" + ToPascalSegments(field)
}

// capitalize returns s with its first letter upper-cased.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}
