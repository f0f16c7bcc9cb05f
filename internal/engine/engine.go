package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hoverplot/hoverplot/internal/crosshair"
	"github.com/hoverplot/hoverplot/internal/geom"
	"github.com/hoverplot/hoverplot/internal/protocol"
	"github.com/hoverplot/hoverplot/internal/scale"
	"github.com/hoverplot/hoverplot/internal/selector"
)

type EngineConfig interface {
	CanvasWidth() float64
	CanvasHeight() float64
}

type Engine interface {
	Layout() []byte
	Output() <-chan []byte
	Rotation() uint8
	Snapping() bool
	Start()
	SubmitMessage(b []byte) error
}

// pointer moves are coalesced to one frame per interval
const frameInterval = time.Second / 60

type engine struct {
	ctx context.Context

	mutex       sync.Mutex
	area        geom.Rect
	rotation    crosshair.Rotation
	stickTo     crosshair.StickTo
	snap        bool
	padding     float64
	clusterSize int
	data        []protocol.Datum
	xScale      scale.Scale

	pointerX       uint16
	pointerY       uint16
	pointerPresent bool
	revision       uint64

	pointerDirty atomic.Bool
	snapState    atomic.Bool
	rotationCode atomic.Uint32

	// frames memoizes computeFrame; Select is only ever called with the
	// engine mutex held, so computeFrame may read state without locking.
	frames       *selector.Last[frameKey, protocol.Frame]
	outputChan   chan []byte
	encodeBuffer []byte
}

type frameKey struct {
	x        uint16
	y        uint16
	present  bool
	revision uint64
}

func NewEngine(cfg EngineConfig, seed []byte, ctx context.Context) Engine {
	e := &engine{
		ctx:         ctx,
		area:        geom.Rect{Width: cfg.CanvasWidth(), Height: cfg.CanvasHeight()},
		snap:        true,
		clusterSize: 1,
		outputChan:  make(chan []byte, 2),
	}
	e.frames = selector.NewLast(e.computeFrame)

	if len(seed) > 0 {
		if err := e.setLayout(seed); err != nil {
			log.Printf("error setting layout seed: %s", err)
		}
	}

	e.rebuildScaleLocked()
	e.snapState.Store(e.snap)
	e.rotationCode.Store(uint32(codeOfRotation(e.rotation)))
	e.emitFrame()

	return e
}

func (e *engine) Layout() []byte {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	l := protocol.Layout{
		Snap:        e.snap,
		Rotation:    codeOfRotation(e.rotation),
		StickTo:     codeOfStickTo(e.stickTo),
		ClusterSize: uint8(e.clusterSize),
		Padding:     e.padding,
		Area:        e.area,
		Count:       uint16(len(e.data)),
		Data:        e.data,
	}
	b := make([]byte, l.EncodeSize())
	l.Encode(b)
	return b
}

func (e *engine) Output() <-chan []byte {
	return e.outputChan
}

func (e *engine) Rotation() uint8 {
	return uint8(e.rotationCode.Load())
}

func (e *engine) Snapping() bool {
	return e.snapState.Load()
}

func (e *engine) Start() {
	ticker := time.NewTicker(frameInterval)
	defer func() {
		ticker.Stop()
		close(e.outputChan)
	}()

	for {
		select {
		case <-e.ctx.Done():
			return
		case <-ticker.C:
			if e.pointerDirty.Swap(false) {
				e.emitFrame()
			}
		}
	}
}

func (e *engine) SubmitMessage(b []byte) error {
	msg, err := protocol.DecodeClientMessage(b)
	if err != nil {
		return fmt.Errorf("decode error: %w", err)
	}

	switch t := msg.(type) {
	case *protocol.PointerMove:
		e.mutex.Lock()
		e.pointerX = t.X
		e.pointerY = t.Y
		e.pointerPresent = true
		e.mutex.Unlock()
		// coalesced: the next tick emits one frame for the latest position
		e.pointerDirty.Store(true)
		return nil
	case *protocol.Command:
		err = e.handleCommand(t)
	case *protocol.SetRotation:
		e.mutex.Lock()
		e.rotation = rotationOfCode(t.Rotation)
		e.rebuildScaleLocked()
		e.mutex.Unlock()
		e.rotationCode.Store(uint32(t.Rotation))
	case *protocol.SetChartArea:
		e.mutex.Lock()
		e.area = geom.Rect{Top: t.Top, Left: t.Left, Width: t.Width, Height: t.Height}
		e.rebuildScaleLocked()
		e.mutex.Unlock()
	case *protocol.SetSeries:
		e.mutex.Lock()
		e.padding = t.Padding
		e.clusterSize = max(1, int(t.ClusterSize))
		e.data = t.Data
		e.rebuildScaleLocked()
		e.mutex.Unlock()
	case *protocol.SetStickTo:
		e.mutex.Lock()
		e.stickTo = stickToOfCode(t.StickTo)
		e.revision += 1
		e.mutex.Unlock()
	}

	if err != nil {
		return fmt.Errorf("handle message error: %w", err)
	}

	e.emitFrame()

	return nil
}

func (e *engine) handleCommand(c *protocol.Command) error {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	switch c.Cmd {
	case protocol.SnapEnable:
		if e.snap {
			return errors.New("snapping already enabled")
		}
		e.snap = true
		e.snapState.Store(true)
		e.revision += 1
	case protocol.SnapDisable:
		if !e.snap {
			return errors.New("snapping already disabled")
		}
		e.snap = false
		e.snapState.Store(false)
		e.revision += 1
	case protocol.PointerLeave:
		e.pointerPresent = false
	case protocol.ClearSeries:
		e.data = nil
		e.rebuildScaleLocked()
	default:
		return fmt.Errorf("unknown command: %d", c.Cmd)
	}

	return nil
}

// rebuildScaleLocked derives the band-axis scale from the current series and
// chart area. Vertical rotations run the band axis along the panel height.
func (e *engine) rebuildScaleLocked() {
	rangeMax := e.area.Width
	if !e.rotation.IsHorizontal() {
		rangeMax = e.area.Height
	}
	domain := make([]float64, len(e.data))
	for i, d := range e.data {
		domain[i] = float64(d.X)
	}
	e.xScale = scale.NewBand(domain, 0, rangeMax, e.padding)
	e.revision += 1
}

func (e *engine) computeFrame(key frameKey) protocol.Frame {
	frame := protocol.Frame{
		Snap:     e.snap,
		Rotated:  !e.rotation.IsHorizontal(),
		Rotation: codeOfRotation(e.rotation),
		CursorX:  key.x,
		CursorY:  key.y,
	}
	if !key.present {
		return frame
	}

	cursor := geom.Point{
		X: float64(key.x) - e.area.Left,
		Y: float64(key.y) - e.area.Top,
	}
	oriented := crosshair.OrientedPosition(e.rotation, cursor, e.area)

	frame.Line, frame.LineVisible = crosshair.CursorLine(e.rotation, e.area, oriented)

	band, visible := crosshair.CursorBand(e.rotation, e.area, oriented, e.snap, e.xScale, e.clusterSize)
	frame.BandVisible = visible
	if !visible {
		return frame
	}
	frame.Band = band

	anchor := crosshair.TooltipAnchor(e.rotation, band, oriented, e.area, e.stickTo)
	frame.AnchorX0 = anchor.X0
	frame.AnchorX1 = anchor.X1
	frame.AnchorY0 = anchor.Y0
	frame.AnchorY1 = anchor.Y1

	if value, within := e.xScale.Invert(oriented.X); within {
		frame.Value = value
	}

	return frame
}

func (e *engine) emitFrame() {
	e.mutex.Lock()
	key := frameKey{x: e.pointerX, y: e.pointerY, present: e.pointerPresent, revision: e.revision}
	frame := e.frames.Select(key)

	size := frame.EncodeSize()
	if uint32(cap(e.encodeBuffer)) < size {
		e.encodeBuffer = make([]byte, size)
	}
	e.encodeBuffer = e.encodeBuffer[:size]
	frame.Encode(e.encodeBuffer)
	out := append([]byte(nil), e.encodeBuffer...)
	e.mutex.Unlock()

	select {
	case e.outputChan <- out:
	default:
		log.Println("frame dropped: output channel full")
	}
}

func (e *engine) setLayout(seed []byte) error {
	l := &protocol.Layout{}
	err := l.Decode(seed)
	if err != nil {
		return err
	}
	e.snap = l.Snap
	e.rotation = rotationOfCode(l.Rotation)
	e.stickTo = stickToOfCode(l.StickTo)
	e.clusterSize = max(1, int(l.ClusterSize))
	e.padding = l.Padding
	if l.Area.Width > 0 && l.Area.Height > 0 {
		e.area = l.Area
	}
	e.data = l.Data
	return nil
}
