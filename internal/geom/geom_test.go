package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectEdges(t *testing.T) {
	r := Rect{Top: 10, Left: 20, Width: 100, Height: 50}
	assert.Equal(t, 120.0, r.Right())
	assert.Equal(t, 60.0, r.Bottom())
}

func TestRectContains(t *testing.T) {
	r := Rect{Top: 0, Left: 0, Width: 100, Height: 100}

	assert.True(t, r.Contains(Point{X: 50, Y: 50}))
	assert.True(t, r.Contains(Point{X: 0, Y: 0}), "top-left edge is inside")
	assert.True(t, r.Contains(Point{X: 100, Y: 100}), "bottom-right edge is inside")
	assert.False(t, r.Contains(Point{X: 100.5, Y: 50}))
	assert.False(t, r.Contains(Point{X: -1, Y: 50}))
	assert.False(t, r.Contains(Point{X: 50, Y: 101}))
}

func TestRectIsZero(t *testing.T) {
	assert.True(t, Rect{}.IsZero())
	assert.False(t, Rect{Width: 1}.IsZero())
}
