package engine

import (
	"context"
	"testing"
	"time"

	"github.com/hoverplot/hoverplot/internal/geom"
	"github.com/hoverplot/hoverplot/internal/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	width, height float64
}

func (c *testConfig) CanvasWidth() float64  { return c.width }
func (c *testConfig) CanvasHeight() float64 { return c.height }

func readFrame(t *testing.T, eng Engine) protocol.Frame {
	t.Helper()
	select {
	case b, ok := <-eng.Output():
		require.True(t, ok, "output channel closed")
		var f protocol.Frame
		require.NoError(t, f.Decode(b))
		return f
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return protocol.Frame{}
	}
}

func submit(t *testing.T, eng Engine, msg protocol.ClientMessage) {
	t.Helper()
	require.NoError(t, eng.SubmitMessage(msg.Encode()))
}

func newTestEngine(t *testing.T) Engine {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	eng := NewEngine(&testConfig{width: 640, height: 480}, nil, ctx)
	go eng.Start()

	// initial frame emitted by the constructor
	f := readFrame(t, eng)
	assert.False(t, f.BandVisible)

	submit(t, eng, &protocol.SetChartArea{Top: 10, Left: 20, Width: 100, Height: 80})
	readFrame(t, eng)
	submit(t, eng, &protocol.SetSeries{
		Count: 4,
		Data: []protocol.Datum{
			{X: 0, Y: 10, Colour: 0xff0000},
			{X: 1, Y: 20, Colour: 0xff0000},
			{X: 2, Y: 30, Colour: 0xff0000},
			{X: 3, Y: 40, Colour: 0xff0000},
		},
	})
	readFrame(t, eng)

	return eng
}

func TestPointerMoveProducesBand(t *testing.T) {
	eng := newTestEngine(t)

	// canvas (50,50) is (30,40) within the panel
	submit(t, eng, &protocol.PointerMove{X: 50, Y: 50})
	f := readFrame(t, eng)

	require.True(t, f.BandVisible)
	assert.Equal(t, geom.Rect{Top: 10, Left: 45, Width: 25, Height: 80}, f.Band)
	assert.Equal(t, 1.0, f.Value)

	require.True(t, f.LineVisible)
	assert.Equal(t, geom.Rect{Top: 50, Left: 20, Width: 100, Height: 0}, f.Line)

	// tooltip sticks to the cursor by default
	assert.Equal(t, 45.0, f.AnchorX0)
	assert.Equal(t, 70.0, f.AnchorX1)
	assert.Equal(t, 50.0, f.AnchorY0)
	assert.Equal(t, 50.0, f.AnchorY1)
	assert.False(t, f.Rotated)
}

func TestPointerOutsidePanelIsInvisible(t *testing.T) {
	eng := newTestEngine(t)

	submit(t, eng, &protocol.PointerMove{X: 300, Y: 50})
	f := readFrame(t, eng)

	assert.False(t, f.BandVisible)
	assert.True(t, f.Band.IsZero())
	assert.False(t, f.LineVisible)
}

func TestPointerLeave(t *testing.T) {
	eng := newTestEngine(t)

	submit(t, eng, &protocol.PointerMove{X: 50, Y: 50})
	f := readFrame(t, eng)
	require.True(t, f.BandVisible)

	submit(t, eng, &protocol.Command{Cmd: protocol.PointerLeave})
	f = readFrame(t, eng)
	assert.False(t, f.BandVisible)
	assert.False(t, f.LineVisible)
}

func TestRotationSwapsBandAxis(t *testing.T) {
	eng := newTestEngine(t)

	submit(t, eng, &protocol.SetRotation{Rotation: protocol.Rot90})
	readFrame(t, eng)
	assert.Equal(t, protocol.Rot90, eng.Rotation())

	submit(t, eng, &protocol.PointerMove{X: 50, Y: 50})
	f := readFrame(t, eng)

	require.True(t, f.BandVisible)
	assert.True(t, f.Rotated)
	// band axis runs along the height: 80px over 4 values
	assert.Equal(t, geom.Rect{Top: 50, Left: 20, Width: 100, Height: 20}, f.Band)
}

func TestSnapToggle(t *testing.T) {
	eng := newTestEngine(t)
	assert.True(t, eng.Snapping())

	err := eng.SubmitMessage((&protocol.Command{Cmd: protocol.SnapEnable}).Encode())
	assert.Error(t, err, "snapping is already enabled")

	submit(t, eng, &protocol.Command{Cmd: protocol.SnapDisable})
	f := readFrame(t, eng)
	assert.False(t, f.Snap)
	assert.False(t, eng.Snapping())

	// without snapping the band starts at the pointer itself
	submit(t, eng, &protocol.PointerMove{X: 50, Y: 50})
	f = readFrame(t, eng)
	require.True(t, f.BandVisible)
	assert.Equal(t, geom.Rect{Top: 10, Left: 50, Width: 25, Height: 80}, f.Band)
}

func TestClearSeriesDropsBand(t *testing.T) {
	eng := newTestEngine(t)

	submit(t, eng, &protocol.Command{Cmd: protocol.ClearSeries})
	readFrame(t, eng)

	submit(t, eng, &protocol.PointerMove{X: 50, Y: 50})
	f := readFrame(t, eng)
	assert.False(t, f.BandVisible, "no series, nothing to snap to")
	assert.True(t, f.LineVisible, "the crosshair line does not need a scale")
}

func TestLayoutRoundTripThroughSeed(t *testing.T) {
	eng := newTestEngine(t)

	submit(t, eng, &protocol.SetRotation{Rotation: protocol.Rot180})
	readFrame(t, eng)
	submit(t, eng, &protocol.SetStickTo{StickTo: protocol.StickMiddle})
	readFrame(t, eng)

	seed := eng.Layout()

	var l protocol.Layout
	require.NoError(t, l.Decode(seed))
	assert.Equal(t, protocol.Rot180, l.Rotation)
	assert.Equal(t, protocol.StickMiddle, l.StickTo)
	assert.Equal(t, uint16(4), l.Count)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	seeded := NewEngine(&testConfig{width: 640, height: 480}, seed, ctx)
	assert.Equal(t, protocol.Rot180, seeded.Rotation())
	assert.True(t, seeded.Snapping())
	assert.Equal(t, seed, seeded.Layout())
}
