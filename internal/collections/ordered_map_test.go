package collections

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedMap_SetGetDelete(t *testing.T) {
	m := NewOrderedMap(4)
	assert.Equal(t, 0, m.Len())

	assert.True(t, m.Set(1, "a"))
	assert.True(t, m.Set(2, "b"))
	assert.False(t, m.Set(1, "a2"))
	assert.Equal(t, 2, m.Len())

	v, ok := m.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "a2", v)

	_, ok = m.Get(3)
	assert.False(t, ok)

	v, ok = m.Delete(2)
	assert.True(t, ok)
	assert.Equal(t, "b", v)
	_, ok = m.Delete(2)
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestOrderedMap_RangeOrder(t *testing.T) {
	m := NewOrderedMap(4)
	m.Set(1, "a")
	m.Set(2, "b")
	m.Set(3, "c")

	var inc []uint64
	m.RangeInc(func(k uint64, v interface{}) bool {
		inc = append(inc, k)
		return true
	})
	assert.Equal(t, []uint64{1, 2, 3}, inc)

	var dec []uint64
	m.RangeDec(func(k uint64, v interface{}) bool {
		dec = append(dec, k)
		return false
	})
	assert.Equal(t, []uint64{3}, dec)
}

func TestOrderedMap_DeleteDuringRange(t *testing.T) {
	m := NewOrderedMap(4)
	for k := uint64(1); k <= 4; k++ {
		m.Set(k, k)
	}
	m.RangeInc(func(k uint64, v interface{}) bool {
		if k%2 == 1 {
			m.Delete(k)
		}
		return true
	})
	assert.Equal(t, 2, m.Len())
	_, ok := m.Get(2)
	assert.True(t, ok)
	_, ok = m.Get(3)
	assert.False(t, ok)
}
