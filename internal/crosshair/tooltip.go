package crosshair

import "github.com/hoverplot/hoverplot/internal/geom"

// StickTo selects which edge of the cursor band the tooltip sticks to on the
// perpendicular axis.
type StickTo uint8

const (
	StickToCursor StickTo = iota
	StickToTop
	StickToBottom
	StickToMiddle
)

// AnchorPosition is the rectangle the tooltip overlay anchors against. For
// horizontal rotations X0/X1 span the band and Y0 == Y1 hold the stick
// position; vertical rotations swap the roles and set IsRotated.
type AnchorPosition struct {
	X0        float64
	X1        float64
	Y0        float64
	Y1        float64
	IsRotated bool
}

// TooltipAnchor derives the anchor from a visible cursor band. cursor is the
// oriented, panel-relative pointer used when stickTo is StickToCursor.
func TooltipAnchor(rot Rotation, band geom.Rect, cursor geom.Point, panel geom.Rect, stickTo StickTo) AnchorPosition {
	if rot.IsHorizontal() {
		var y float64
		switch stickTo {
		case StickToTop:
			y = band.Top
		case StickToBottom:
			y = band.Bottom()
		case StickToMiddle:
			y = band.Top + band.Height/2
		default:
			y = panel.Top + cursor.Y
			if rot == Rotation180 {
				y = panel.Top + panel.Height - cursor.Y
			}
		}
		return AnchorPosition{X0: band.Left, X1: band.Right(), Y0: y, Y1: y}
	}

	var x float64
	switch stickTo {
	case StickToTop:
		x = band.Left
	case StickToBottom:
		x = band.Right()
	case StickToMiddle:
		x = band.Left + band.Width/2
	default:
		x = panel.Left + panel.Width - cursor.Y
		if rot == RotationMinus90 {
			x = panel.Left + cursor.Y
		}
	}
	return AnchorPosition{X0: x, X1: x, Y0: band.Top, Y1: band.Bottom(), IsRotated: true}
}
