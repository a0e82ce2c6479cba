package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"overlaymap/internal/geom"
)

func TestSelectionPickPolicy(t *testing.T) {
	a := square("a", 10, 59, 1, nil)
	b := square("b", 10, 59, 1, nil)
	s := NewSelection()

	assert.True(t, s.Pick([]*geom.Feature{a}))
	assert.Equal(t, []*geom.Feature{a}, s.Active())
	assert.False(t, s.Pick([]*geom.Feature{a}))

	assert.True(t, s.Pick([]*geom.Feature{a, b}))
	assert.Empty(t, s.Active())

	s.Pick([]*geom.Feature{b})
	assert.True(t, s.Pick(nil))
	assert.Zero(t, s.Len())
	assert.False(t, s.Pick(nil))
}

func TestSelectionSetAndRetain(t *testing.T) {
	a := square("a", 10, 59, 1, nil)
	b := square("b", 12, 59, 1, nil)
	c := square("c", 14, 59, 1, nil)
	s := NewSelection()

	assert.True(t, s.Set(a, b))
	assert.True(t, s.IsActive(a))
	assert.True(t, s.IsActive(b))
	assert.False(t, s.IsActive(c))

	assert.True(t, s.Retain([]*geom.Feature{b, c}))
	assert.Equal(t, []*geom.Feature{b}, s.Active())
	assert.False(t, s.Retain([]*geom.Feature{b}))
	assert.True(t, s.Clear())
	assert.False(t, s.Clear())
}
