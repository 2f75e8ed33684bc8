// Package test - Deterministic fakes for exercising the annotation pipeline
// without a camera, a window or a model.
package test

import (
	"context"
	"image"
	"image/color"
	"iter"

	"github.com/nvr-ai/go-annotate/inference"
	"gocv.io/x/gocv"
)

// MockFrameGenerator creates deterministic BGR test frames.
//
// Example:
//
//	gen := NewMockFrameGenerator(640, 480)
//	frame := gen.GenerateStaticFrame()
//	defer frame.Close()
type MockFrameGenerator struct {
	width  int
	height int
}

// NewMockFrameGenerator creates a new frame generator with specified dimensions.
//
// Arguments:
// - width: Frame width in pixels.
// - height: Frame height in pixels.
//
// Returns:
// - A configured MockFrameGenerator instance.
func NewMockFrameGenerator(width, height int) *MockFrameGenerator {
	return &MockFrameGenerator{width: width, height: height}
}

// GenerateStaticFrame creates a black 3 channel frame.
func (g *MockFrameGenerator) GenerateStaticFrame() gocv.Mat {
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), g.height, g.width, gocv.MatTypeCV8UC3)
}

// Op is one call recorded by RecordingCanvas.
type Op struct {
	Kind      string // "rect" or "text"
	Rect      image.Rectangle
	Text      string
	Origin    image.Point
	Scale     float64
	Color     color.RGBA
	Thickness int
}

// RecordingCanvas records drawing calls instead of drawing them.
type RecordingCanvas struct {
	Ops []Op
}

// Rectangle records a rectangle.
func (c *RecordingCanvas) Rectangle(r image.Rectangle, col color.RGBA, thickness int) {
	c.Ops = append(c.Ops, Op{Kind: "rect", Rect: r, Color: col, Thickness: thickness})
}

// PutText records a text draw.
func (c *RecordingCanvas) PutText(text string, org image.Point, scale float64, col color.RGBA, thickness int) {
	c.Ops = append(c.Ops, Op{Kind: "text", Text: text, Origin: org, Scale: scale, Color: col, Thickness: thickness})
}

// Count returns how many ops of a kind were recorded.
func (c *RecordingCanvas) Count(kind string) int {
	n := 0
	for _, op := range c.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Texts returns every recorded text in call order.
func (c *RecordingCanvas) Texts() []string {
	var texts []string
	for _, op := range c.Ops {
		if op.Kind == "text" {
			texts = append(texts, op.Text)
		}
	}
	return texts
}

// MockDetector replays one detection list per call.
type MockDetector struct {
	// Frames holds the detections returned by successive calls; calls past
	// the end return an empty sequence.
	Frames [][]inference.Detection
	// Errors holds an optional error per call.
	Errors     []error
	Calls      int
	Thresholds []float32
	Closed     bool
}

// Detect returns the next scripted detections.
func (m *MockDetector) Detect(_ context.Context, _ gocv.Mat, threshold float32) (iter.Seq[inference.Detection], error) {
	call := m.Calls
	m.Calls++
	m.Thresholds = append(m.Thresholds, threshold)
	if call < len(m.Errors) && m.Errors[call] != nil {
		return nil, m.Errors[call]
	}
	if call >= len(m.Frames) {
		return inference.Seq(nil), nil
	}
	return inference.Seq(m.Frames[call]), nil
}

// Close marks the detector closed.
func (m *MockDetector) Close() error {
	m.Closed = true
	return nil
}

// MockSource hands out a fixed number of generated frames, then reports end
// of stream.
type MockSource struct {
	Generator *MockFrameGenerator
	Frames    int
	Reads     int
	Closes    int
}

// Read fills frame while frames remain.
func (s *MockSource) Read(frame *gocv.Mat) bool {
	s.Reads++
	if s.Reads > s.Frames {
		return false
	}
	generated := s.Generator.GenerateStaticFrame()
	defer generated.Close()
	generated.CopyTo(frame)
	return true
}

// Close counts releases.
func (s *MockSource) Close() error {
	s.Closes++
	return nil
}

// MockDisplay replays scripted key codes, -1 once they run out.
type MockDisplay struct {
	Keys   []int
	Shown  int
	Waits  []int
	Closes int
}

// IMShow counts presented frames.
func (d *MockDisplay) IMShow(_ gocv.Mat) {
	d.Shown++
}

// WaitKey returns the next scripted key.
func (d *MockDisplay) WaitKey(delay int) int {
	d.Waits = append(d.Waits, delay)
	i := len(d.Waits) - 1
	if i < len(d.Keys) {
		return d.Keys[i]
	}
	return -1
}

// Close counts releases.
func (d *MockDisplay) Close() error {
	d.Closes++
	return nil
}
