// Package inference - ONNX model inference.
package inference

import (
	"context"
	"image"
	"iter"
	"sync"

	"github.com/nvr-ai/go-annotate/models/postprocess"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ONNXDetector runs a YOLOv8-style model through onnxruntime.
type ONNXDetector struct {
	mu      sync.Mutex
	session *Session
	layout  OutputLayout
	nms     postprocess.NMSConfig
}

// NewONNXDetector creates a new onnxruntime backed detector.
//
// Arguments:
//   - cfg: The engine configuration.
//
// Returns:
//   - *ONNXDetector: The detector.
//   - error: An error if the session creation fails.
func NewONNXDetector(cfg Config) (*ONNXDetector, error) {
	session, err := NewSession(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize ONNX detector")
	}
	return &ONNXDetector{
		session: session,
		layout:  OutputLayout{NumClasses: cfg.NumClasses, InputShape: cfg.InputShape},
		nms:     postprocess.NMSConfig{IoUThreshold: cfg.NMSThreshold, ClassAware: true},
	}, nil
}

// Detect runs inference on the provided frame.
func (d *ONNXDetector) Detect(ctx context.Context, frame gocv.Mat, threshold float32) (iter.Seq[Detection], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if frame.Empty() {
		return Seq(nil), nil
	}

	img, err := frame.ToImage()
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert frame")
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.session == nil {
		return nil, errors.New("model not loaded")
	}

	if err := PrepareInput(img, d.layout.InputShape, d.session.Input.GetData()); err != nil {
		return nil, errors.Wrap(err, "failed to prepare input")
	}
	if err := d.session.Session.Run(); err != nil {
		return nil, errors.Wrap(err, "failed to run inference")
	}

	detections, err := DecodeOutput(
		d.session.Output.GetData(),
		d.layout,
		image.Pt(frame.Cols(), frame.Rows()),
		threshold,
		d.nms,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode output")
	}
	return Seq(detections), nil
}

// Close releases the session.
func (d *ONNXDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.session == nil {
		return nil
	}
	err := d.session.Close()
	d.session = nil
	return err
}
