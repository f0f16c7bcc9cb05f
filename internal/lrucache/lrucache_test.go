package lrucache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddGet(t *testing.T) {
	c := NewLruCache[int, string](4)
	c.Add(1, "a")
	c.Add(2, "b")

	v, ok := c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = c.Get(3)
	assert.False(t, ok)
}

func TestEviction(t *testing.T) {
	c := NewLruCache[int, int](2)
	c.Add(1, 10)
	c.Add(2, 20)

	// touching 1 makes 2 the eviction candidate
	c.Get(1)
	c.Add(3, 30)

	_, ok := c.Get(2)
	assert.False(t, ok)
	_, ok = c.Get(1)
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestPurge(t *testing.T) {
	c := NewLruCache[int, int](4)
	c.Add(1, 10)
	c.Add(2, 20)
	c.Purge()

	assert.Equal(t, 0, c.Len())
	_, ok := c.Get(1)
	assert.False(t, ok)
}
