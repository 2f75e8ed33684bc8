// Package overlay - Draws category styled detection boxes, labels and the
// object count onto frames.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"github.com/nvr-ai/go-annotate/models"
)

// Canvas is the drawing surface a frame is annotated on.
type Canvas interface {
	// Rectangle draws the outline of r.
	Rectangle(r image.Rectangle, c color.RGBA, thickness int)
	// PutText draws text with its baseline starting at org.
	PutText(text string, org image.Point, scale float64, c color.RGBA, thickness int)
}

// Overlay colors. gocv swaps them into the Mat's BGR order when drawing.
var (
	Yellow  = color.RGBA{255, 255, 0, 0}
	Orange  = color.RGBA{255, 165, 0, 0}
	Red     = color.RGBA{255, 0, 0, 0}
	Magenta = color.RGBA{255, 0, 255, 0}
	Cyan    = color.RGBA{0, 255, 255, 0}
	Green   = color.RGBA{0, 255, 0, 0}
	White   = color.RGBA{255, 255, 255, 0}
)

// Palette maps each category to its color.
var Palette = map[models.Category]color.RGBA{
	models.CategoryPerson:      Yellow,
	models.CategoryAnimal:      Orange,
	models.CategoryVehicle:     Red,
	models.CategoryFood:        Magenta,
	models.CategoryElectronics: Cyan,
	models.CategoryOther:       Green,
}

const (
	// BoxThickness is the stroke width of boxes and text.
	BoxThickness = 2
	// LabelOffset is how far above the box the label baseline sits.
	LabelOffset = 10
	// LabelScale is the font scale of detection labels.
	LabelScale = 0.5
	// CountScale is the font scale of the object count.
	CountScale = 0.7
)

// CountPosition is where the object count is drawn.
var CountPosition = image.Pt(10, 30)

// ColorOf returns the color a category is drawn with.
func ColorOf(category models.Category) color.RGBA {
	if c, ok := Palette[category]; ok {
		return c
	}
	return Palette[models.CategoryOther]
}

// Render draws one classified detection. The box is always drawn; the label
// only when showLabels is set.
//
// Arguments:
//   - canvas: The frame to draw on.
//   - box: The detection bounding box.
//   - c: The classification of the detection.
//   - showLabels: Whether the label text is visible.
func Render(canvas Canvas, box image.Rectangle, c models.Classification, showLabels bool) {
	col := ColorOf(c.Category)
	canvas.Rectangle(box, col, BoxThickness)
	if showLabels {
		canvas.PutText(c.Label, image.Pt(box.Min.X, box.Min.Y-LabelOffset), LabelScale, col, BoxThickness)
	}
}

// CountText formats the object count overlay.
func CountText(count int) string {
	return fmt.Sprintf("Objects Detected: %d", count)
}

// RenderCount draws the number of objects detected in the frame.
func RenderCount(canvas Canvas, count int) {
	canvas.PutText(CountText(count), CountPosition, CountScale, White, BoxThickness)
}
