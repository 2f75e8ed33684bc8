package inference

import (
	"image"
	"image/color"
	"slices"
	"testing"

	"github.com/nvr-ai/go-annotate/models/postprocess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syntheticOutput builds a channel-major YOLOv8 output with the given anchors.
type anchor struct {
	cx, cy, w, h float32
	class        int
	score        float32
}

func syntheticOutput(numClasses, anchors int, set []anchor) []float32 {
	out := make([]float32, (4+numClasses)*anchors)
	for i, a := range set {
		out[i] = a.cx
		out[anchors+i] = a.cy
		out[2*anchors+i] = a.w
		out[3*anchors+i] = a.h
		out[anchors*(4+a.class)+i] = a.score
	}
	return out
}

func TestDecodeOutput(t *testing.T) {
	layout := OutputLayout{NumClasses: 3, InputShape: image.Pt(100, 100)}
	output := syntheticOutput(3, 6, []anchor{
		{cx: 50, cy: 50, w: 20, h: 40, class: 2, score: 0.73},
		{cx: 10, cy: 10, w: 10, h: 10, class: 0, score: 0.39},
		{cx: 51, cy: 50, w: 20, h: 40, class: 2, score: 0.60},
		{cx: 90, cy: 90, w: 40, h: 40, class: 1, score: 0.95},
	})

	detections, err := DecodeOutput(output, layout, image.Pt(200, 100), 0.4, postprocess.DefaultNMSConfig())
	require.NoError(t, err)
	require.Len(t, detections, 2)

	assert.Equal(t, 1, detections[0].ClassID)
	assert.InDelta(t, 0.95, detections[0].Confidence, 1e-6)
	// 90+20 is clipped to the frame.
	assert.Equal(t, image.Rect(140, 70, 200, 100), detections[0].Box)

	assert.Equal(t, 2, detections[1].ClassID)
	assert.Equal(t, image.Rect(80, 30, 120, 70), detections[1].Box)

	for _, d := range detections {
		assert.GreaterOrEqual(t, d.Confidence, float32(0.4))
	}
}

func TestDecodeOutputRejectsBadLayout(t *testing.T) {
	_, err := DecodeOutput(make([]float32, 10), OutputLayout{NumClasses: 80, InputShape: image.Pt(640, 640)}, image.Pt(640, 480), 0.4, postprocess.DefaultNMSConfig())
	assert.Error(t, err)

	_, err = DecodeOutput(make([]float32, 84), OutputLayout{NumClasses: 80}, image.Pt(640, 480), 0.4, postprocess.DefaultNMSConfig())
	assert.Error(t, err)
}

func TestAnchorCount(t *testing.T) {
	assert.Equal(t, 8400, anchorCount(640, 640))
	assert.Equal(t, 2100, anchorCount(320, 320))
}

func TestSeqStopsEarly(t *testing.T) {
	detections := []Detection{{ClassID: 1}, {ClassID: 2}, {ClassID: 3}}
	assert.Equal(t, detections, slices.Collect(Seq(detections)))

	var seen []int
	for d := range Seq(detections) {
		seen = append(seen, d.ClassID)
		if d.ClassID == 2 {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, seen)
	assert.Empty(t, slices.Collect(Seq(nil)))
}

func TestPrepareInput(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 255, G: 0, B: 51, A: 255})
		}
	}

	shape := image.Pt(4, 4)
	dst := make([]float32, 3*16)
	require.NoError(t, PrepareInput(img, shape, dst))

	assert.InDelta(t, 1.0, dst[0], 1e-3)
	assert.InDelta(t, 0.0, dst[16], 1e-3)
	assert.InDelta(t, 0.2, dst[32], 1e-3)

	assert.Error(t, PrepareInput(img, shape, make([]float32, 10)))
	assert.Error(t, PrepareInput(img, image.Pt(0, 0), dst))
}

func TestNewDetectorUnsupportedEngine(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine = "tensorflow"
	_, err := NewDetector(cfg)
	assert.ErrorIs(t, err, ErrUnsupportedEngine)
}

func TestNewDetectorMissingModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Engine = EngineOpenCV
	cfg.ModelPath = t.TempDir() + "/missing.onnx"
	_, err := NewDetector(cfg)
	assert.Error(t, err)
}
