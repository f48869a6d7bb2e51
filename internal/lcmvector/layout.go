// Package lcmvector models the row layout that generated vector types follow
// and the LCM struct that carries a vector plus a millisecond timestamp.
//
// The renderers in internal/vectorgen derive every per-field statement from a
// Layout, so the ordering rules here are the ones the emitted code obeys.
package lcmvector

import (
	"fmt"
)

// Layout assigns each field name a row index equal to its position.
type Layout struct {
	fields []string
}

// NewLayout builds a layout from an ordered field list.
// Field names must be unique.
func NewLayout(fields []string) (*Layout, error) {
	l := &Layout{fields: make([]string, len(fields))}
	seen := make(map[string]int, len(fields))
	for i, f := range fields {
		if prev, ok := seen[f]; ok {
			return nil, fmt.Errorf("field %q repeated at rows %d and %d", f, prev, i)
		}
		seen[f] = i
		l.fields[i] = f
	}
	return l, nil
}

// NumCoordinates returns the number of rows.
func (l *Layout) NumCoordinates() int {
	return len(l.fields)
}
