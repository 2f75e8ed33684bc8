package inference

import (
	"context"
	"image"
	"iter"
	"os"
	"sync"

	"github.com/nvr-ai/go-annotate/models/postprocess"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// DNNDetector handles ONNX model inference using gocv.ReadNet()
type DNNDetector struct {
	mu     sync.Mutex
	net    gocv.Net
	layout OutputLayout
	nms    postprocess.NMSConfig
	loaded bool
}

// NewDNNDetector loads the model into the OpenCV DNN module.
//
// Arguments:
//   - cfg: The engine configuration.
//
// Returns:
//   - *DNNDetector: The detector.
//   - error: An error if the model cannot be loaded.
func NewDNNDetector(cfg Config) (*DNNDetector, error) {
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, errors.Wrapf(err, "model file not found: %s", cfg.ModelPath)
	}

	net := gocv.ReadNet(cfg.ModelPath, "")
	if net.Empty() {
		return nil, errors.Errorf("failed to load ONNX model: %s", cfg.ModelPath)
	}

	// CPU for now.
	net.SetPreferableBackend(gocv.NetBackendOpenCV)
	net.SetPreferableTarget(gocv.NetTargetCPU)

	return &DNNDetector{
		net:    net,
		layout: OutputLayout{NumClasses: cfg.NumClasses, InputShape: cfg.InputShape},
		nms:    postprocess.NMSConfig{IoUThreshold: cfg.NMSThreshold, ClassAware: true},
		loaded: true,
	}, nil
}

// Detect runs inference on the input frame.
func (d *DNNDetector) Detect(ctx context.Context, frame gocv.Mat, threshold float32) (iter.Seq[Detection], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if frame.Empty() {
		return Seq(nil), nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		return nil, errors.New("detector not initialized")
	}

	// Resize, scale to [0,1] and swap BGR to RGB.
	blob := gocv.BlobFromImage(frame, 1.0/255.0, d.layout.InputShape, gocv.NewScalar(0, 0, 0, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	outputs := d.net.Forward("")
	defer outputs.Close()

	data, err := outputs.DataPtrFloat32()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read network output")
	}

	detections, err := DecodeOutput(data, d.layout, image.Pt(frame.Cols(), frame.Rows()), threshold, d.nms)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode output")
	}
	return Seq(detections), nil
}

// Close releases the network.
func (d *DNNDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		return nil
	}
	d.loaded = false
	return d.net.Close()
}
