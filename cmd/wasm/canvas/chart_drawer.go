//go:build js
// +build js

package canvas

import (
	"fmt"
	"syscall/js"

	"github.com/hoverplot/hoverplot/internal/crosshair"
	"github.com/hoverplot/hoverplot/internal/geom"
	"github.com/hoverplot/hoverplot/internal/protocol"
	"github.com/hoverplot/hoverplot/internal/scale"
)

type ChartDrawer interface {
	Draw(frame *protocol.Frame)
	SetDimensions(height, width float64)
	SetRotation(code uint8)
	SetSeries(data []protocol.Datum, padding float64)
	Area() geom.Rect
}

const (
	axisMargin   = 40.0
	bandFill     = "rgba(255, 255, 255, 0.15)"
	lineStroke   = "#aaaaaa"
	tooltipFill  = "#222222"
	tooltipText  = "#eeeeee"
	tooltipWidth = 72.0
)

type chartDrawer struct {
	canvas js.Value // OffscreenCanvas
	ctx    js.Value // OffscreenCanvasRenderingContext2D

	area     geom.Rect
	rotation crosshair.Rotation

	data    []protocol.Datum
	padding float64
	xScale  scale.Scale
	yScale  scale.Scale
}

func NewChartDrawer(canvas js.Value, height, width float64) ChartDrawer {
	cd := &chartDrawer{
		canvas: canvas,
		ctx:    canvas.Call("getContext", "2d", map[string]any{"alpha": false}),
	}
	cd.SetDimensions(height, width)
	return cd
}

func (cd *chartDrawer) Area() geom.Rect {
	return cd.area
}

func (cd *chartDrawer) SetDimensions(height, width float64) {
	cd.canvas.Set("height", height)
	cd.canvas.Set("width", width)
	cd.area = geom.Rect{
		Top:    axisMargin / 2,
		Left:   axisMargin,
		Width:  width - axisMargin*1.5,
		Height: height - axisMargin,
	}
	cd.rebuildScales()
}

func (cd *chartDrawer) SetRotation(code uint8) {
	switch code {
	case protocol.Rot90:
		cd.rotation = crosshair.Rotation90
	case protocol.Rot180:
		cd.rotation = crosshair.Rotation180
	case protocol.RotMinus90:
		cd.rotation = crosshair.RotationMinus90
	default:
		cd.rotation = crosshair.Rotation0
	}
	cd.rebuildScales()
}

func (cd *chartDrawer) SetSeries(data []protocol.Datum, padding float64) {
	cd.data = data
	cd.padding = padding
	cd.rebuildScales()
}

func (cd *chartDrawer) rebuildScales() {
	bandRange := cd.area.Width
	metricRange := cd.area.Height
	if !cd.rotation.IsHorizontal() {
		bandRange, metricRange = metricRange, bandRange
	}

	domain := make([]float64, len(cd.data))
	var maxY float64
	for i, d := range cd.data {
		domain[i] = float64(d.X)
		if y := float64(d.Y); y > maxY {
			maxY = y
		}
	}
	cd.xScale = scale.NewBand(domain, 0, bandRange, cd.padding)
	cd.yScale = scale.NewLinear(0, maxY, 0, metricRange)
}

func (cd *chartDrawer) Draw(frame *protocol.Frame) {
	width := cd.canvas.Get("width").Float()
	height := cd.canvas.Get("height").Float()
	cd.ctx.Set("fillStyle", "#181818")
	cd.ctx.Call("fillRect", 0, 0, width, height)

	for i := range cd.data {
		cd.drawBar(&cd.data[i])
	}

	if frame == nil {
		return
	}

	if frame.LineVisible {
		cd.ctx.Set("strokeStyle", lineStroke)
		cd.ctx.Set("lineWidth", 1)
		cd.ctx.Call("beginPath")
		cd.ctx.Call("moveTo", frame.Line.Left, frame.Line.Top)
		cd.ctx.Call("lineTo", frame.Line.Right(), frame.Line.Bottom())
		cd.ctx.Call("stroke")
	}

	if frame.BandVisible {
		cd.ctx.Set("fillStyle", bandFill)
		cd.ctx.Call("fillRect", frame.Band.Left, frame.Band.Top, frame.Band.Width, frame.Band.Height)
		cd.drawTooltip(frame)
	}
}

// drawBar places one series bar according to the chart rotation: the band
// axis carries the X value, bars grow along the metric axis.
func (cd *chartDrawer) drawBar(d *protocol.Datum) {
	start, ok := cd.xScale.Position(float64(d.X))
	if !ok {
		return
	}
	length, ok := cd.yScale.Position(float64(d.Y))
	if !ok {
		return
	}
	bw := cd.xScale.Bandwidth()

	var r geom.Rect
	switch cd.rotation {
	case crosshair.Rotation90:
		r = geom.Rect{Top: cd.area.Top + start, Left: cd.area.Left, Width: length, Height: bw}
	case crosshair.RotationMinus90:
		r = geom.Rect{Top: cd.area.Bottom() - start - bw, Left: cd.area.Left, Width: length, Height: bw}
	case crosshair.Rotation180:
		r = geom.Rect{Top: cd.area.Top + cd.area.Height - length, Left: cd.area.Right() - start - bw, Width: bw, Height: length}
	default:
		r = geom.Rect{Top: cd.area.Top + cd.area.Height - length, Left: cd.area.Left + start, Width: bw, Height: length}
	}

	cd.ctx.Set("fillStyle", fmt.Sprintf("#%.6x", d.Colour))
	cd.ctx.Call("fillRect", r.Left, r.Top, r.Width, r.Height)
}

func (cd *chartDrawer) drawTooltip(frame *protocol.Frame) {
	x := frame.AnchorX1 + 4
	y := frame.AnchorY0
	if frame.Rotated {
		x = frame.AnchorX0 + 4
		y = frame.AnchorY1
	}
	// keep the box inside the canvas
	if x+tooltipWidth > cd.canvas.Get("width").Float() {
		x = frame.AnchorX0 - tooltipWidth - 4
	}

	cd.ctx.Set("fillStyle", tooltipFill)
	cd.ctx.Call("fillRect", x, y, tooltipWidth, 20)
	cd.ctx.Set("fillStyle", tooltipText)
	cd.ctx.Set("font", "12px monospace")
	cd.ctx.Call("fillText", fmt.Sprintf("x = %g", frame.Value), x+6, y+14)
}
