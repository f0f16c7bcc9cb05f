// Package protocol defines the binary wire format between the hover engine
// and its clients: client messages mutating chart state or reporting pointer
// movement, frames carrying the computed crosshair geometry, and the
// persistable chart layout.
package protocol

import "math"

const bytesPerDatum = 7

// Datum is one series point: X is the band-axis domain value, Y the metric
// value, Colour the series colour of the bar drawn in that slot.
type Datum struct {
	X, Y   uint16
	Colour uint32
}

func putUint16(b []byte, off uint, v uint16) uint {
	b[off] = byte(v >> 8)
	b[off+1] = byte(v & 0xff)
	return off + 2
}

func getUint16(b []byte, off uint) (uint16, uint) {
	return (uint16(b[off]) << 8) | uint16(b[off+1]), off + 2
}

func putFloat64(b []byte, off uint, v float64) uint {
	bits := math.Float64bits(v)
	for i := uint(0); i < 8; i++ {
		b[off+i] = byte(bits >> (56 - 8*i))
	}
	return off + 8
}

func getFloat64(b []byte, off uint) (float64, uint) {
	var bits uint64
	for i := uint(0); i < 8; i++ {
		bits = (bits << 8) | uint64(b[off+i])
	}
	return math.Float64frombits(bits), off + 8
}

func encodeData(src []Datum, count uint32, dest []byte, destOffset uint) {
	off := destOffset
	for i := range count {
		d := src[i]
		off = putUint16(dest, off, d.X)
		off = putUint16(dest, off, d.Y)

		dest[off] = byte((d.Colour >> 16) & 0xff)
		off += 1
		dest[off] = byte((d.Colour >> 8) & 0xff)
		off += 1
		dest[off] = byte(d.Colour & 0xff)
		off += 1
	}
}

func decodeData(src []byte, dest []Datum, srcOffset uint) {
	off := srcOffset
	for i := range dest {
		var x, y uint16
		x, off = getUint16(src, off)
		y, off = getUint16(src, off)

		c := (uint32(src[off]) << 16) & 0xff0000
		off += 1
		c = c | ((uint32(src[off]) << 8) & 0xff00)
		off += 1
		c = c | uint32(src[off])
		off += 1

		dest[i] = Datum{X: x, Y: y, Colour: c}
	}
}
