package lcmvector

// SchemaField is one slot in the LCM struct.
type SchemaField struct {
	Type string // "int64_t" or "double"
	Name string
}

// Schema returns the LCM struct slots for a layout: the timestamp first,
// then one double per field in row order.
func Schema(l *Layout) []SchemaField {
	out := make([]SchemaField, 0, l.NumCoordinates()+1)
	out = append(out, SchemaField{Type: "int64_t", Name: "timestamp"})
	for _, f := range l.fields {
		out = append(out, SchemaField{Type: "double", Name: f})
	}
	return out
}
