package crosshair

import (
	"testing"

	"github.com/hoverplot/hoverplot/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestTooltipAnchorHorizontal(t *testing.T) {
	band := geom.Rect{Top: 10, Left: 45, Width: 25, Height: 80}
	cursor := geom.Point{X: 30, Y: 40}

	anchor := TooltipAnchor(Rotation0, band, cursor, panel, StickToCursor)
	assert.Equal(t, AnchorPosition{X0: 45, X1: 70, Y0: 50, Y1: 50}, anchor)

	anchor = TooltipAnchor(Rotation0, band, cursor, panel, StickToTop)
	assert.Equal(t, AnchorPosition{X0: 45, X1: 70, Y0: 10, Y1: 10}, anchor)

	anchor = TooltipAnchor(Rotation0, band, cursor, panel, StickToBottom)
	assert.Equal(t, AnchorPosition{X0: 45, X1: 70, Y0: 90, Y1: 90}, anchor)

	anchor = TooltipAnchor(Rotation0, band, cursor, panel, StickToMiddle)
	assert.Equal(t, AnchorPosition{X0: 45, X1: 70, Y0: 50, Y1: 50}, anchor)

	// the oriented cursor y flips back to screen space at 180°
	anchor = TooltipAnchor(Rotation180, band, geom.Point{X: 70, Y: 15}, panel, StickToCursor)
	assert.Equal(t, AnchorPosition{X0: 45, X1: 70, Y0: 75, Y1: 75}, anchor)
}

func TestTooltipAnchorVertical(t *testing.T) {
	band := geom.Rect{Top: 30, Left: 20, Width: 100, Height: 20}
	cursor := geom.Point{X: 30, Y: 40}

	anchor := TooltipAnchor(Rotation90, band, cursor, panel, StickToCursor)
	assert.Equal(t, AnchorPosition{X0: 80, X1: 80, Y0: 30, Y1: 50, IsRotated: true}, anchor)

	anchor = TooltipAnchor(RotationMinus90, band, cursor, panel, StickToCursor)
	assert.Equal(t, AnchorPosition{X0: 60, X1: 60, Y0: 30, Y1: 50, IsRotated: true}, anchor)

	anchor = TooltipAnchor(Rotation90, band, cursor, panel, StickToMiddle)
	assert.Equal(t, AnchorPosition{X0: 70, X1: 70, Y0: 30, Y1: 50, IsRotated: true}, anchor)
}
