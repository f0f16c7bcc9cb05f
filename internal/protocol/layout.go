package protocol

import (
	"errors"

	"github.com/hoverplot/hoverplot/internal/geom"
)

const layoutHeader = 46 // flags + rotation + stick-to + cluster size + padding + area + count

// Layout is the persistable chart state: everything the engine needs to
// rebuild its scales after a restart. It is what POST /save writes to the
// database and what seeds the engine at boot.
type Layout struct {
	Snap        bool
	Rotation    uint8
	StickTo     uint8
	ClusterSize uint8
	Padding     float64
	Area        geom.Rect
	Count       uint16
	Data        []Datum
}

func (l *Layout) EncodeSize() uint32 {
	return layoutHeader + uint32(l.Count)*bytesPerDatum
}

func (l *Layout) Encode(b []byte) {
	if l.Snap {
		b[0] = 1
	} else {
		b[0] = 0
	}
	b[1] = l.Rotation
	b[2] = l.StickTo
	b[3] = l.ClusterSize

	off := putFloat64(b, 4, l.Padding)
	off = putRect(b, off, l.Area)
	putUint16(b, off, l.Count)
	encodeData(l.Data, uint32(l.Count), b, layoutHeader)
}

func (l *Layout) Decode(b []byte) error {
	if len(b) < layoutHeader {
		return errors.New("[Layout] too short")
	}
	l.Snap = b[0] == 1
	l.Rotation = b[1]
	l.StickTo = b[2]
	l.ClusterSize = b[3]

	var off uint
	l.Padding, off = getFloat64(b, 4)
	l.Area, off = getRect(b, off)
	l.Count, _ = getUint16(b, off)

	if len(b) < int(layoutHeader+uint(l.Count)*bytesPerDatum) {
		return errors.New("[Layout] byte length does not match data count")
	}
	l.Data = make([]Datum, l.Count)
	decodeData(b, l.Data, layoutHeader)
	return nil
}
