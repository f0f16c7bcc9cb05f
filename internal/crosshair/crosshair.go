// Package crosshair computes the cursor band, cursor line and tooltip anchor
// geometry for a pointer hovering an interactive chart.
package crosshair

import (
	"github.com/hoverplot/hoverplot/internal/geom"
	"github.com/hoverplot/hoverplot/internal/scale"
)

// Rotation is the chart orientation in degrees. 0 and 180 keep the x axis
// horizontal; 90 and -90 swap the axes.
type Rotation int

const (
	Rotation0       Rotation = 0
	Rotation90      Rotation = 90
	Rotation180     Rotation = 180
	RotationMinus90 Rotation = -90
)

func (r Rotation) IsHorizontal() bool {
	return r == Rotation0 || r == Rotation180
}

// OrientedPosition projects a panel-relative pointer into rotation space, so
// that downstream geometry can treat X as the band axis regardless of the
// chart orientation.
func OrientedPosition(rot Rotation, cursor geom.Point, panel geom.Rect) geom.Point {
	switch rot {
	case Rotation90:
		return geom.Point{X: cursor.Y, Y: panel.Width - cursor.X}
	case RotationMinus90:
		return geom.Point{X: panel.Height - cursor.Y, Y: cursor.X}
	case Rotation180:
		return geom.Point{X: panel.Width - cursor.X, Y: panel.Height - cursor.Y}
	default:
		return cursor
	}
}

// BandSnap is the snapped footprint of a domain value on the band axis:
// Position is the pixel start of the slot, Band its pixel extent.
type BandSnap struct {
	Position float64
	Band     float64
}

// SnapPosition resolves value through xScale and widens the raw bandwidth to
// the full step (bandwidth plus padding), times the number of bars sharing the
// slot. ok is false when the scale cannot resolve the value.
func SnapPosition(value float64, xScale scale.Scale, totalBars int) (BandSnap, bool) {
	if totalBars < 1 {
		totalBars = 1
	}
	position, ok := xScale.Position(value)
	if !ok {
		return BandSnap{}, false
	}
	bandwidth := xScale.Bandwidth()
	if bandwidth <= 0 {
		// continuous scale: the band degenerates to a 1px slot at the value
		return BandSnap{Position: position, Band: 1}, true
	}
	band := bandwidth / (1 - xScale.Padding())
	halfPadding := (band - bandwidth) / 2
	return BandSnap{
		Position: position - halfPadding*float64(totalBars),
		Band:     band * float64(totalBars),
	}, true
}

// CursorBand returns the highlight rectangle under an oriented,
// panel-relative cursor. The second return is false when the pointer is
// outside the panel or the band axis cannot resolve a value; callers must
// treat the zero rect as "not visible".
//
// The returned rect is clamped at both panel edges: it never extends beyond
// the panel's own bounds.
func CursorBand(rot Rotation, panel geom.Rect, cursor geom.Point, snapEnabled bool, xScale scale.Scale, totalBars int) (geom.Rect, bool) {
	chartWidth, chartHeight := panel.Width, panel.Height
	if !rot.IsHorizontal() {
		chartWidth, chartHeight = panel.Height, panel.Width
	}
	if cursor.X < 0 || cursor.X > chartWidth || cursor.Y < 0 || cursor.Y > chartHeight {
		return geom.Rect{}, false
	}

	value, withinBandwidth := xScale.Invert(cursor.X)
	if !withinBandwidth {
		return geom.Rect{}, false
	}
	snap, ok := SnapPosition(value, xScale, totalBars)
	if !ok {
		return geom.Rect{}, false
	}

	var bandOffset float64
	if xScale.Bandwidth() > 0 {
		bandOffset = snap.Band
	}
	adjusted := snap.Position
	if !snapEnabled {
		adjusted = cursor.X
	}

	if rot.IsHorizontal() {
		left := panel.Left + adjusted
		if rot == Rotation180 {
			left = panel.Left + panel.Width - adjusted - bandOffset
		}
		width := snap.Band
		if left+width > panel.Right() {
			width = panel.Right() - left
		}
		if left < panel.Left {
			width -= panel.Left - left
			left = panel.Left
		}
		if width <= 0 {
			return geom.Rect{}, false
		}
		return geom.Rect{Top: panel.Top, Left: left, Width: width, Height: panel.Height}, true
	}

	top := panel.Top + adjusted
	if rot == RotationMinus90 {
		top = panel.Top + panel.Height - adjusted - bandOffset
	}
	height := snap.Band
	if top+height > panel.Bottom() {
		height = panel.Bottom() - top
	}
	if top < panel.Top {
		height -= panel.Top - top
		top = panel.Top
	}
	if height <= 0 {
		return geom.Rect{}, false
	}
	return geom.Rect{Top: top, Left: panel.Left, Width: panel.Width, Height: height}, true
}

// CursorLine returns the thin crosshair line perpendicular to the band axis,
// through the oriented cursor. Horizontal rotations yield a zero-height
// horizontal line, vertical rotations a zero-width vertical one.
func CursorLine(rot Rotation, panel geom.Rect, cursor geom.Point) (geom.Rect, bool) {
	chartWidth, chartHeight := panel.Width, panel.Height
	if !rot.IsHorizontal() {
		chartWidth, chartHeight = panel.Height, panel.Width
	}
	if cursor.X < 0 || cursor.X > chartWidth || cursor.Y < 0 || cursor.Y > chartHeight {
		return geom.Rect{}, false
	}

	if rot.IsHorizontal() {
		top := panel.Top + cursor.Y
		if rot == Rotation180 {
			top = panel.Top + panel.Height - cursor.Y
		}
		return geom.Rect{Top: top, Left: panel.Left, Width: panel.Width, Height: 0}, true
	}

	left := panel.Left + panel.Width - cursor.Y
	if rot == RotationMinus90 {
		left = panel.Left + cursor.Y
	}
	return geom.Rect{Top: panel.Top, Left: left, Width: 0, Height: panel.Height}, true
}
