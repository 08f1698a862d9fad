package schema

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDGenerator(t *testing.T) {
	v, err := UUIDGenerator{}.Generate()
	require.NoError(t, err)
	_, err = uuid.Parse(v.(string))
	assert.NoError(t, err)
}

func TestULIDGeneratorMonotonic(t *testing.T) {
	g := NewULIDGenerator()
	prev := ""
	for i := 0; i < 100; i++ {
		v, err := g.Generate()
		require.NoError(t, err)
		id := v.(string)
		_, err = ulid.ParseStrict(id)
		require.NoError(t, err)
		assert.Greater(t, id, prev)
		prev = id
	}
}

func TestSnowflakeUnique(t *testing.T) {
	g := NewSnowflakeGenerator(7)
	seen := make(map[int64]bool)
	for i := 0; i < 1000; i++ {
		v, err := g.Generate()
		require.NoError(t, err)
		id := v.(int64)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestGeneratorRegistry(t *testing.T) {
	r := NewGeneratorRegistry()
	_, err := r.Generate("missing")
	assert.Error(t, err)

	r.Register("const", constGenerator{})
	v, err := r.Generate("const")
	require.NoError(t, err)
	assert.Equal(t, "fixed", v)
}

type constGenerator struct{}

func (constGenerator) Generate() (any, error) { return "fixed", nil }
func (constGenerator) Type() string           { return "const" }
