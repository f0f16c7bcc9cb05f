package protocol

import (
	"errors"

	"github.com/hoverplot/hoverplot/internal/geom"
)

const (
	flagBandVisible = 1 << iota
	flagLineVisible
	flagSnap
	flagRotated
)

const frameSize = 2 + 8 + 3*32 + 4 // flags + rotation + value + three quads + cursor

// Frame is one computed hover result pushed to every client: the cursor band
// and crosshair line rectangles, the tooltip anchor, and the snapped domain
// value under the pointer. An invisible band or line is the zero rect.
type Frame struct {
	BandVisible bool
	LineVisible bool
	Snap        bool
	Rotated     bool
	Rotation    uint8
	Value       float64
	Band        geom.Rect
	Line        geom.Rect
	AnchorX0    float64
	AnchorX1    float64
	AnchorY0    float64
	AnchorY1    float64
	CursorX     uint16
	CursorY     uint16
}

func (f *Frame) EncodeSize() uint32 {
	return frameSize
}

func (f *Frame) Encode(b []byte) {
	var flags byte
	if f.BandVisible {
		flags |= flagBandVisible
	}
	if f.LineVisible {
		flags |= flagLineVisible
	}
	if f.Snap {
		flags |= flagSnap
	}
	if f.Rotated {
		flags |= flagRotated
	}
	b[0] = flags
	b[1] = f.Rotation

	off := putFloat64(b, 2, f.Value)
	off = putRect(b, off, f.Band)
	off = putRect(b, off, f.Line)
	off = putFloat64(b, off, f.AnchorX0)
	off = putFloat64(b, off, f.AnchorX1)
	off = putFloat64(b, off, f.AnchorY0)
	off = putFloat64(b, off, f.AnchorY1)
	off = putUint16(b, off, f.CursorX)
	putUint16(b, off, f.CursorY)
}

func (f *Frame) Decode(b []byte) error {
	if len(b) < frameSize {
		return errors.New("[Frame] too short")
	}
	flags := b[0]
	f.BandVisible = flags&flagBandVisible != 0
	f.LineVisible = flags&flagLineVisible != 0
	f.Snap = flags&flagSnap != 0
	f.Rotated = flags&flagRotated != 0
	f.Rotation = b[1]

	var off uint
	f.Value, off = getFloat64(b, 2)
	f.Band, off = getRect(b, off)
	f.Line, off = getRect(b, off)
	f.AnchorX0, off = getFloat64(b, off)
	f.AnchorX1, off = getFloat64(b, off)
	f.AnchorY0, off = getFloat64(b, off)
	f.AnchorY1, off = getFloat64(b, off)
	f.CursorX, off = getUint16(b, off)
	f.CursorY, _ = getUint16(b, off)
	return nil
}

func putRect(b []byte, off uint, r geom.Rect) uint {
	off = putFloat64(b, off, r.Top)
	off = putFloat64(b, off, r.Left)
	off = putFloat64(b, off, r.Width)
	return putFloat64(b, off, r.Height)
}

func getRect(b []byte, off uint) (geom.Rect, uint) {
	var r geom.Rect
	r.Top, off = getFloat64(b, off)
	r.Left, off = getFloat64(b, off)
	r.Width, off = getFloat64(b, off)
	r.Height, off = getFloat64(b, off)
	return r, off
}
