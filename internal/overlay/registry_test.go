package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistryIdempotent(t *testing.T) {
	r := NewRegistry()
	a := testLayer(t, KindKommune)
	b := testLayer(t, KindShelter)

	var snaps [][]*Layer
	unsub := r.OnChange(func(ls []*Layer) { snaps = append(snaps, ls) })
	defer unsub()

	assert.True(t, r.Add(a))
	assert.False(t, r.Add(a))
	assert.True(t, r.Add(b))
	assert.Equal(t, []*Layer{a, b}, r.Layers())

	assert.True(t, r.Remove(a))
	assert.False(t, r.Remove(a))
	assert.Equal(t, []*Layer{b}, r.Layers())

	// no-ops publish nothing
	assert.Len(t, snaps, 3)
	assert.Equal(t, []*Layer{a}, snaps[0])
	assert.Equal(t, []*Layer{a, b}, snaps[1])
	assert.Equal(t, []*Layer{b}, snaps[2])
}

func TestRegistryUnsubscribe(t *testing.T) {
	r := NewRegistry()
	calls := 0
	unsub := r.OnChange(func([]*Layer) { calls++ })
	r.Add(testLayer(t, KindDistrict))
	unsub()
	r.Add(testLayer(t, KindSchool))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, r.Len())
}
