package geom

// Point is a position in canvas pixel space.
type Point struct {
	X float64
	Y float64
}

// Rect is a pixel box described the way canvases and tooltips want it:
// top/left corner plus extent.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

func (r Rect) Right() float64 {
	return r.Left + r.Width
}

func (r Rect) Bottom() float64 {
	return r.Top + r.Height
}

// Contains reports whether p lies within r, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// IsZero reports whether r is the sentinel "not visible" rectangle.
func (r Rect) IsZero() bool {
	return r == Rect{}
}
