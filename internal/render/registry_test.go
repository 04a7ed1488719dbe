package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryOrdinalsFollowDeclarationOrder(t *testing.T) {
	reg := NewRegistry()
	for i, name := range []string{"a", "b", "c"} {
		id, err := reg.Register(&fakeScene{name: name})
		require.NoError(t, err)
		assert.Equal(t, i+1, id)
	}

	assert.Equal(t, 3, reg.Count())
	assert.Equal(t, []string{"a", "b", "c"}, reg.Names())
	assert.Equal(t, []Descriptor{{1, "a"}, {2, "b"}, {3, "c"}}, reg.Descriptors())

	s, err := reg.Get(2)
	require.NoError(t, err)
	assert.Equal(t, "b", s.Name())

	id, ok := reg.Lookup("c")
	assert.True(t, ok)
	assert.Equal(t, 3, id)
}

func TestRegistryRejectsOutOfRange(t *testing.T) {
	reg := NewRegistry()
	_, _ = reg.Register(&fakeScene{name: "only"})

	_, err := reg.Get(0)
	assert.ErrorIs(t, err, ErrSceneRange)
	_, err = reg.Get(2)
	assert.ErrorIs(t, err, ErrSceneRange)
}

func TestRegistryKeepsOrdinalsContiguous(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Register(&fakeScene{name: "a"})
	require.NoError(t, err)

	_, err = reg.Register(nil)
	assert.ErrorIs(t, err, ErrNilScene)
	_, err = reg.Register(&fakeScene{name: "a"})
	assert.ErrorIs(t, err, ErrDuplicateScene)

	id, err := reg.Register(&fakeScene{name: "b"})
	require.NoError(t, err)
	assert.Equal(t, 2, id)
	assert.Equal(t, 2, reg.Count())
}
