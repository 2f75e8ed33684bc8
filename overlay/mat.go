package overlay

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

// MatCanvas draws on a gocv.Mat in place.
type MatCanvas struct {
	Mat *gocv.Mat
}

// NewMatCanvas wraps frame for drawing.
func NewMatCanvas(frame *gocv.Mat) Canvas {
	return MatCanvas{Mat: frame}
}

// Rectangle draws the outline of r.
func (m MatCanvas) Rectangle(r image.Rectangle, c color.RGBA, thickness int) {
	gocv.Rectangle(m.Mat, r, c, thickness)
}

// PutText draws text in the Hershey simplex font.
func (m MatCanvas) PutText(text string, org image.Point, scale float64, c color.RGBA, thickness int) {
	gocv.PutText(m.Mat, text, org, gocv.FontHersheySimplex, scale, c, thickness)
}
