package lcmvector

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"
)

func TestNewLayout(t *testing.T) {
	l, err := NewLayout([]string{"steering_angle", "throttle"})
	require.NoError(t, err)
	require.Equal(t, 2, l.NumCoordinates())
}

func TestNewLayout_Empty(t *testing.T) {
	l, err := NewLayout(nil)
	require.NoError(t, err)
	require.Equal(t, 0, l.NumCoordinates())
	require.Equal(t, []SchemaField{{Type: "int64_t", Name: "timestamp"}}, Schema(l))
}

func TestNewLayout_RejectsRepeatedField(t *testing.T) {
	_, err := NewLayout([]string{"x", "y", "x"})
	require.ErrorContains(t, err, `"x" repeated at rows 0 and 2`)
}

func TestSchema_TimestampLeads(t *testing.T) {
	l, err := NewLayout([]string{"steering_angle", "throttle"})
	require.NoError(t, err)

	require.Equal(t, []SchemaField{
		{Type: "int64_t", Name: "timestamp"},
		{Type: "double", Name: "steering_angle"},
		{Type: "double", Name: "throttle"},
	}, Schema(l))
}

func TestPermutationProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)
	base := []string{"a", "b", "c", "d", "e", "f"}

	properties.Property("schema order follows the field order", prop.ForAll(
		func(seed int64) bool {
			perm := rand.New(rand.NewSource(seed)).Perm(len(base))
			fields := make([]string, len(base))
			for i, p := range perm {
				fields[i] = base[p]
			}
			l, err := NewLayout(fields)
			if err != nil {
				return false
			}
			schema := Schema(l)
			if len(schema) != len(fields)+1 {
				return false
			}
			for i, f := range fields {
				if schema[i+1].Name != f {
					return false
				}
			}
			return l.NumCoordinates() == len(fields)
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}
