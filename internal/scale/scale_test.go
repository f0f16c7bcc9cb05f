package scale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBandPosition(t *testing.T) {
	s := NewBand([]float64{0, 1, 2, 3}, 0, 100, 0)

	assert.Equal(t, 25.0, s.Step())
	assert.Equal(t, 25.0, s.Bandwidth())

	px, ok := s.Position(2)
	require.True(t, ok)
	assert.Equal(t, 50.0, px)

	_, ok = s.Position(7)
	assert.False(t, ok, "value outside the domain cannot be resolved")
}

func TestBandPositionWithPadding(t *testing.T) {
	s := NewBand([]float64{0, 1}, 0, 100, 0.2)

	assert.Equal(t, 50.0, s.Step())
	assert.Equal(t, 40.0, s.Bandwidth())

	// half the padding insets the band within its step
	px, ok := s.Position(0)
	require.True(t, ok)
	assert.Equal(t, 5.0, px)

	px, ok = s.Position(1)
	require.True(t, ok)
	assert.Equal(t, 55.0, px)
}

func TestBandDeduplicatesAndSortsDomain(t *testing.T) {
	s := NewBand([]float64{3, 1, 3, 2, 1}, 0, 90, 0)

	assert.Equal(t, 30.0, s.Step())
	px, ok := s.Position(1)
	require.True(t, ok)
	assert.Equal(t, 0.0, px)
	px, ok = s.Position(3)
	require.True(t, ok)
	assert.Equal(t, 60.0, px)
}

func TestBandInvert(t *testing.T) {
	s := NewBand([]float64{0, 1, 2, 3}, 0, 100, 0.2)

	v, within := s.Invert(30)
	assert.Equal(t, 1.0, v)
	assert.True(t, within)

	// padding gutter: right step but outside the band footprint
	v, within = s.Invert(26)
	assert.Equal(t, 1.0, v)
	assert.False(t, within)

	_, within = s.Invert(-5)
	assert.False(t, within)
	_, within = s.Invert(130)
	assert.False(t, within)
}

func TestEmptyBand(t *testing.T) {
	s := NewBand(nil, 0, 100, 0)
	_, ok := s.Position(0)
	assert.False(t, ok)
	_, within := s.Invert(50)
	assert.False(t, within)
}

func TestLinear(t *testing.T) {
	s := NewLinear(0, 10, 0, 200)

	px, ok := s.Position(5)
	require.True(t, ok)
	assert.Equal(t, 100.0, px)
	assert.Equal(t, 0.0, s.Bandwidth())

	v, within := s.Invert(50)
	assert.Equal(t, 2.5, v)
	assert.True(t, within)

	_, within = s.Invert(250)
	assert.False(t, within)
}

func TestLinearDegenerateDomain(t *testing.T) {
	s := NewLinear(4, 4, 0, 100)
	_, ok := s.Position(4)
	assert.False(t, ok)
}
