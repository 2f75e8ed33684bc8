package images

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIoU_Correctness(t *testing.T) {
	tests := []struct {
		name     string
		r1       Rect
		r2       Rect
		expected float32
	}{
		{name: "Identical rectangles", r1: Rect{0, 0, 100, 100}, r2: Rect{0, 0, 100, 100}, expected: 1.0},
		{name: "No overlap", r1: Rect{0, 0, 100, 100}, r2: Rect{200, 200, 300, 300}, expected: 0.0},
		{name: "Touching edges", r1: Rect{0, 0, 100, 100}, r2: Rect{100, 0, 200, 100}, expected: 0.0},
		// intersection=2500, union=17500
		{name: "Half overlap", r1: Rect{0, 0, 100, 100}, r2: Rect{50, 50, 150, 150}, expected: 0.142857},
		{name: "One inside other", r1: Rect{0, 0, 100, 100}, r2: Rect{25, 25, 75, 75}, expected: 0.25},
		{name: "Degenerate", r1: Rect{0, 0, 0, 0}, r2: Rect{0, 0, 0, 0}, expected: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, CalculateIoU(tt.r1, tt.r2), 0.001)
			assert.InDelta(t, tt.expected, CalculateIoU(tt.r2, tt.r1), 0.001, "IoU must be symmetric")
		})
	}
}

func TestRectClip(t *testing.T) {
	r := Rect{X1: -20, Y1: 10, X2: 700, Y2: 500}.Clip(640, 480)
	assert.Equal(t, Rect{X1: 0, Y1: 10, X2: 640, Y2: 480}, r)
	assert.False(t, r.Empty())

	outside := Rect{X1: 700, Y1: 10, X2: 800, Y2: 20}.Clip(640, 480)
	assert.True(t, outside.Empty())
	assert.Equal(t, 0, outside.Area())
}

func TestRectConversions(t *testing.T) {
	r := FromRectangle(image.Rect(30, 40, 10, 20))
	assert.Equal(t, Rect{X1: 10, Y1: 20, X2: 30, Y2: 40}, r)
	assert.Equal(t, image.Rect(10, 20, 30, 40), r.Rectangle())
	assert.Equal(t, 400, r.Area())
}
