package protocol

import (
	"errors"
	"fmt"
)

type clientMessageType uint8

const (
	command clientMessageType = iota
	pointerMove
	setRotation
	setChartArea
	setSeries
	setStickTo
)

// Rotation wire codes.
const (
	Rot0 uint8 = iota
	Rot90
	Rot180
	RotMinus90
)

// StickTo wire codes.
const (
	StickCursor uint8 = iota
	StickTop
	StickBottom
	StickMiddle
)

type ClientMessage interface {
	Encode() []byte
	decode([]byte) error
}

func DecodeClientMessage(b []byte) (ClientMessage, error) {
	if len(b) == 0 {
		return nil, errors.New("empty client message")
	}
	var msg ClientMessage
	switch b[0] {
	case byte(command):
		msg = &Command{}
	case byte(pointerMove):
		msg = &PointerMove{}
	case byte(setRotation):
		msg = &SetRotation{}
	case byte(setChartArea):
		msg = &SetChartArea{}
	case byte(setSeries):
		msg = &SetSeries{}
	case byte(setStickTo):
		msg = &SetStickTo{}
	default:
		return nil, fmt.Errorf("unknown client message type: %d", b[0])
	}
	err := msg.decode(b)
	if err != nil {
		return nil, err
	}
	return msg, nil
}

type CommandType uint8

const (
	SnapEnable CommandType = iota
	SnapDisable
	PointerLeave
	ClearSeries
)

type Command struct {
	Cmd CommandType
}

func (c *Command) Encode() []byte {
	b := make([]byte, 2)
	b[0] = byte(command)
	b[1] = byte(c.Cmd)
	return b
}

func (c *Command) decode(b []byte) error {
	if len(b) < 2 {
		return errors.New("[Command] too short")
	}
	c.Cmd = CommandType(b[1])
	return nil
}

// PointerMove reports the pointer position in canvas pixels, relative to the
// canvas origin (not the chart panel).
type PointerMove struct {
	X, Y uint16
}

func (pm *PointerMove) Encode() []byte {
	b := make([]byte, 5)
	b[0] = byte(pointerMove)
	off := putUint16(b, 1, pm.X)
	putUint16(b, off, pm.Y)
	return b
}

func (pm *PointerMove) decode(b []byte) error {
	if len(b) < 5 {
		return errors.New("[PointerMove] too short")
	}
	var off uint = 1
	pm.X, off = getUint16(b, off)
	pm.Y, _ = getUint16(b, off)
	return nil
}

type SetRotation struct {
	Rotation uint8
}

func (sr *SetRotation) Encode() []byte {
	b := make([]byte, 2)
	b[0] = byte(setRotation)
	b[1] = sr.Rotation
	return b
}

func (sr *SetRotation) decode(b []byte) error {
	if len(b) < 2 {
		return errors.New("[SetRotation] too short")
	}
	if b[1] > RotMinus90 {
		return fmt.Errorf("[SetRotation] invalid rotation code: %d", b[1])
	}
	sr.Rotation = b[1]
	return nil
}

// SetChartArea places the chart panel within the canvas.
type SetChartArea struct {
	Top, Left, Width, Height float64
}

func (sa *SetChartArea) Encode() []byte {
	b := make([]byte, 33)
	b[0] = byte(setChartArea)
	off := putFloat64(b, 1, sa.Top)
	off = putFloat64(b, off, sa.Left)
	off = putFloat64(b, off, sa.Width)
	putFloat64(b, off, sa.Height)
	return b
}

func (sa *SetChartArea) decode(b []byte) error {
	if len(b) < 33 {
		return errors.New("[SetChartArea] too short")
	}
	var off uint = 1
	sa.Top, off = getFloat64(b, off)
	sa.Left, off = getFloat64(b, off)
	sa.Width, off = getFloat64(b, off)
	sa.Height, _ = getFloat64(b, off)
	return nil
}

// SetSeries replaces the charted series. Padding is the band inner-padding
// fraction, ClusterSize the number of bars sharing each band slot.
type SetSeries struct {
	Padding     float64
	ClusterSize uint8
	Count       uint16
	Data        []Datum
}

const setSeriesHeader = 12 // type + padding + cluster size + count

func (ss *SetSeries) Encode() []byte {
	b := make([]byte, setSeriesHeader+len(ss.Data)*bytesPerDatum)
	b[0] = byte(setSeries)
	off := putFloat64(b, 1, ss.Padding)
	b[off] = ss.ClusterSize
	off += 1
	putUint16(b, off, ss.Count)
	encodeData(ss.Data, uint32(ss.Count), b, setSeriesHeader)
	return b
}

func (ss *SetSeries) decode(b []byte) error {
	if len(b) < setSeriesHeader {
		return errors.New("[SetSeries] too short")
	}
	var off uint = 1
	ss.Padding, off = getFloat64(b, off)
	ss.ClusterSize = b[off]
	off += 1
	ss.Count, _ = getUint16(b, off)

	if len(b) < int(setSeriesHeader+uint(ss.Count)*bytesPerDatum) {
		return errors.New("[SetSeries] byte length does not match data count")
	}
	ss.Data = make([]Datum, ss.Count)
	decodeData(b, ss.Data, setSeriesHeader)
	return nil
}

type SetStickTo struct {
	StickTo uint8
}

func (st *SetStickTo) Encode() []byte {
	b := make([]byte, 2)
	b[0] = byte(setStickTo)
	b[1] = st.StickTo
	return b
}

func (st *SetStickTo) decode(b []byte) error {
	if len(b) < 2 {
		return errors.New("[SetStickTo] too short")
	}
	if b[1] > StickMiddle {
		return fmt.Errorf("[SetStickTo] invalid stick-to code: %d", b[1])
	}
	st.StickTo = b[1]
	return nil
}
