// Package web holds the server-rendered pages. Components are written
// against the templ runtime directly so the pages can be composed with
// templ.Handler like any generated component.
package web

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

type Globals struct {
	CanvasWidth  float64
	CanvasHeight float64
}

func Index(chartPath string, g *Globals) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>hoverplot</title>
<link rel="stylesheet" href="/assets/css/main.css">
</head>
<body>
<main id="app" data-chart-path="%s" data-canvas-width="%g" data-canvas-height="%g"></main>
<script type="module" src="/assets/js/index.js"></script>
</body>
</html>`, chartPath, g.CanvasWidth, g.CanvasHeight)
		return err
	})
}

func Chart(g *Globals, rotation uint8, snapping bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		snapChecked := ""
		if snapping {
			snapChecked = " checked"
		}
		_, err := fmt.Fprintf(w, `<section id="chart">
<canvas id="chart-canvas" width="%g" height="%g"></canvas>
<form id="chart-controls">
<select name="rotation">%s</select>
<label><input type="checkbox" name="snap"%s> snap to band</label>
<select name="stickto">
<option value="0">cursor</option>
<option value="1">top</option>
<option value="2">bottom</option>
<option value="3">middle</option>
</select>
<button type="button" id="save">SAVE</button>
</form>
</section>`, g.CanvasWidth, g.CanvasHeight, rotationOptions(rotation), snapChecked)
		return err
	})
}

var rotationLabels = []string{"0°", "90°", "180°", "-90°"}

func rotationOptions(selected uint8) string {
	opts := ""
	for i, label := range rotationLabels {
		sel := ""
		if uint8(i) == selected {
			sel = " selected"
		}
		opts += fmt.Sprintf(`<option value="%d"%s>%s</option>`, i, sel, label)
	}
	return opts
}
