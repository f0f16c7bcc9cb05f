//go:build js
// +build js

package main

import (
	"context"
	"io"
	"log"
	"math/rand/v2"
	"net/http"
	"syscall/js"

	"github.com/coder/websocket"
	"github.com/hoverplot/hoverplot/cmd/wasm/canvas"
	"github.com/hoverplot/hoverplot/internal/protocol"
)

var (
	ctx  = context.Background()
	conn *websocket.Conn

	drawer     canvas.ChartDrawer
	frameCache *protocol.Frame

	requestAnimationFrame = js.Global().Get("requestAnimationFrame")

	drawHandle = js.Null()
	drawFunc   = js.FuncOf(func(this js.Value, args []js.Value) any {
		if drawer != nil {
			drawer.Draw(frameCache)
			drawHandle = js.Null()
		}
		return js.Undefined()
	})

	onMessageFunc = js.FuncOf(func(this js.Value, args []js.Value) any {
		return onMessage(args[0])
	})
)

func main() {
	global := js.Global()
	defer func() {
		drawFunc.Release()

		global.Call("removeEventListener", "message", onMessageFunc)
		onMessageFunc.Release()
	}()

	var err error

	conn, _, err = websocket.Dial(ctx, "/hover", &websocket.DialOptions{})
	if err != nil {
		log.Fatalf("websocket dial failed: %s", err)
	}
	log.Println("WS CONN OPEN")

	global.Call("addEventListener", "message", onMessageFunc)
	global.Call("postMessage", map[string]any{"type": "ready"})

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			log.Printf("websocket read failed: %s", err)
			return
		}
		frame := &protocol.Frame{}
		if err := frame.Decode(data); err != nil {
			log.Printf("could not decode frame: %s", err)
			continue
		}
		frameCache = frame
		scheduleDraw()
	}
}

func scheduleDraw() {
	if drawHandle.IsNull() {
		drawHandle = requestAnimationFrame.Invoke(drawFunc)
	}
}

func onMessage(event js.Value) any {
	data := event.Get("data")
	switch data.Get("type").String() {
	case "init":
		cv := data.Get("canvas")
		drawer = canvas.NewChartDrawer(cv, cv.Get("height").Float(), cv.Get("width").Float())
		// callbacks must not block; layout fetch and writes happen off the event loop
		go initChart()
	case "pointermove":
		send(&protocol.PointerMove{
			X: uint16(data.Get("x").Int()),
			Y: uint16(data.Get("y").Int()),
		})
	case "pointerleave":
		send(&protocol.Command{Cmd: protocol.PointerLeave})
	case "rotation":
		code := uint8(data.Get("rotation").Int())
		drawer.SetRotation(code)
		send(&protocol.SetRotation{Rotation: code})
	case "snap":
		cmd := protocol.SnapDisable
		if data.Get("enabled").Bool() {
			cmd = protocol.SnapEnable
		}
		send(&protocol.Command{Cmd: cmd})
	case "stickto":
		send(&protocol.SetStickTo{StickTo: uint8(data.Get("stickTo").Int())})
	case "resize":
		height := data.Get("height").Float()
		width := data.Get("width").Float()
		drawer.SetDimensions(height, width)
		area := drawer.Area()
		send(&protocol.SetChartArea{Top: area.Top, Left: area.Left, Width: area.Width, Height: area.Height})
	default:
		log.Printf("unknown worker message: %s", data.Get("type").String())
	}
	scheduleDraw()
	return js.Undefined()
}

// initChart aligns the server's chart area with the drawer's and seeds a demo
// series when no layout has ever been saved.
func initChart() {
	area := drawer.Area()
	send(&protocol.SetChartArea{Top: area.Top, Left: area.Left, Width: area.Width, Height: area.Height})

	layout, err := fetchLayout()
	if err != nil {
		log.Printf("could not fetch layout: %s", err)
		return
	}
	drawer.SetRotation(layout.Rotation)

	if layout.Count > 0 {
		drawer.SetSeries(layout.Data, layout.Padding)
		return
	}

	demo := &protocol.SetSeries{Padding: 0.2, ClusterSize: 1, Count: 8}
	for x := range uint16(8) {
		demo.Data = append(demo.Data, protocol.Datum{
			X:      x,
			Y:      uint16(rand.UintN(100) + 1),
			Colour: rand.Uint32N(0xffffff) + 1,
		})
	}
	drawer.SetSeries(demo.Data, demo.Padding)
	send(demo)
}

func fetchLayout() (*protocol.Layout, error) {
	resp, err := http.Get("/layout")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	layout := &protocol.Layout{}
	if err := layout.Decode(b); err != nil {
		return nil, err
	}
	return layout, nil
}

func send(msg protocol.ClientMessage) {
	if conn == nil {
		return
	}
	b := msg.Encode()
	go func() {
		if err := conn.Write(ctx, websocket.MessageBinary, b); err != nil {
			log.Printf("could not write to websocket: %s", err)
		}
	}()
}
