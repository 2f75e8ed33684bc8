package inference

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/nvr-ai/go-annotate/images"
	"github.com/nvr-ai/go-annotate/models/postprocess"
	"github.com/pkg/errors"
)

// OutputLayout describes a YOLOv8-style output tensor: for every anchor, 4 box
// values (cx, cy, w, h in input pixels) followed by NumClasses class scores,
// stored channel-major ([4+NumClasses][Anchors]).
type OutputLayout struct {
	NumClasses int
	InputShape image.Point
}

// Anchors returns the number of anchors stored in an output of length n.
func (l OutputLayout) Anchors(n int) (int, error) {
	channels := 4 + l.NumClasses
	if l.NumClasses <= 0 || n == 0 || n%channels != 0 {
		return 0, errors.Errorf("output of %d values does not match %d channels", n, channels)
	}
	return n / channels, nil
}

// DecodeOutput converts a raw YOLOv8 output into detections for a frame.
//
// Arguments:
//   - output: The raw output tensor data.
//   - layout: The tensor layout.
//   - frameSize: The size of the frame the model input was resized from.
//   - threshold: Minimum class score to keep.
//   - nms: Non-maximum suppression parameters.
//
// Returns:
//   - []Detection: Detections in descending confidence order.
//   - error: An error if the output does not match the layout.
func DecodeOutput(output []float32, layout OutputLayout, frameSize image.Point, threshold float32, nms postprocess.NMSConfig) ([]Detection, error) {
	anchors, err := layout.Anchors(len(output))
	if err != nil {
		return nil, err
	}
	if layout.InputShape.X <= 0 || layout.InputShape.Y <= 0 {
		return nil, errors.Errorf("invalid input shape %v", layout.InputShape)
	}

	scaleX := float32(frameSize.X) / float32(layout.InputShape.X)
	scaleY := float32(frameSize.Y) / float32(layout.InputShape.Y)

	results := make([]postprocess.Result, 0, 64)
	for idx := 0; idx < anchors; idx++ {
		classID := -1
		probability := math32.Inf(-1)
		for col := 0; col < layout.NumClasses; col++ {
			p := output[anchors*(col+4)+idx]
			if p > probability {
				probability = p
				classID = col
			}
		}
		if classID < 0 || math32.IsNaN(probability) || probability < threshold {
			continue
		}

		xc, yc := output[idx], output[anchors+idx]
		w, h := output[2*anchors+idx], output[3*anchors+idx]
		box := images.Rect{
			X1: int((xc - w/2) * scaleX),
			Y1: int((yc - h/2) * scaleY),
			X2: int((xc + w/2) * scaleX),
			Y2: int((yc + h/2) * scaleY),
		}.Clip(frameSize.X, frameSize.Y)
		if box.Empty() {
			continue
		}

		results = append(results, postprocess.Result{Box: box, Score: probability, Class: classID})
	}

	postprocess.SortByScore(results)
	results = postprocess.ApplyGreedyNMS(results, nms)

	detections := make([]Detection, 0, len(results))
	for _, r := range results {
		detections = append(detections, Detection{
			ClassID:    r.Class,
			Confidence: r.Score,
			Box:        r.Box.Rectangle(),
		})
	}
	return detections, nil
}
