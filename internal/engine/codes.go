package engine

import (
	"github.com/hoverplot/hoverplot/internal/crosshair"
	"github.com/hoverplot/hoverplot/internal/protocol"
)

func rotationOfCode(code uint8) crosshair.Rotation {
	switch code {
	case protocol.Rot90:
		return crosshair.Rotation90
	case protocol.Rot180:
		return crosshair.Rotation180
	case protocol.RotMinus90:
		return crosshair.RotationMinus90
	default:
		return crosshair.Rotation0
	}
}

func codeOfRotation(r crosshair.Rotation) uint8 {
	switch r {
	case crosshair.Rotation90:
		return protocol.Rot90
	case crosshair.Rotation180:
		return protocol.Rot180
	case crosshair.RotationMinus90:
		return protocol.RotMinus90
	default:
		return protocol.Rot0
	}
}

func stickToOfCode(code uint8) crosshair.StickTo {
	switch code {
	case protocol.StickTop:
		return crosshair.StickToTop
	case protocol.StickBottom:
		return crosshair.StickToBottom
	case protocol.StickMiddle:
		return crosshair.StickToMiddle
	default:
		return crosshair.StickToCursor
	}
}

func codeOfStickTo(s crosshair.StickTo) uint8 {
	switch s {
	case crosshair.StickToTop:
		return protocol.StickTop
	case crosshair.StickToBottom:
		return protocol.StickBottom
	case crosshair.StickToMiddle:
		return protocol.StickMiddle
	default:
		return protocol.StickCursor
	}
}
