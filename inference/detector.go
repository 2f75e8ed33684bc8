// Package inference - Object detection capability consumed by the annotator.
package inference

import (
	"context"
	"image"
	"iter"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// EngineType is the type of the engine
type EngineType string

const (
	// EngineONNX is the ONNX engine that uses the onnxruntime library
	EngineONNX EngineType = "onnxruntime"
	// EngineOpenCV is the OpenCV DNN engine that uses gocv.ReadNet
	EngineOpenCV EngineType = "opencv"
)

// Engines is a list of all supported engines
var Engines = []EngineType{EngineONNX, EngineOpenCV}

// Detection is a single detection reported by the model for one frame.
type Detection struct {
	// ClassID is the 0-based class index of the model.
	ClassID int
	// Confidence is the detection score in [0,1].
	Confidence float32
	// Box is the bounding box in frame pixels, Min inclusive and Max exclusive.
	Box image.Rectangle
}

// Detector is the narrow interface around a detection model.
type Detector interface {
	// Detect runs the model on frame and returns the detections whose
	// confidence is at least threshold. The sequence may be empty.
	Detect(ctx context.Context, frame gocv.Mat, threshold float32) (iter.Seq[Detection], error)
	// Close releases the model.
	Close() error
}

// Config selects and configures a detection engine.
type Config struct {
	// Engine selects the backend.
	Engine EngineType
	// ModelPath is the path to the ONNX model file.
	ModelPath string
	// InputShape is the model input size (width, height).
	InputShape image.Point
	// NumClasses is the number of class scores per anchor.
	NumClasses int
	// NMSThreshold is the IoU above which overlapping boxes of one class are merged.
	NMSThreshold float32
	// SharedLibraryPath overrides the onnxruntime library location.
	SharedLibraryPath string
	// ExecutionProvider selects the onnxruntime execution provider.
	ExecutionProvider Provider
}

// DefaultConfig returns a YOLOv8n configuration on the onnxruntime CPU provider.
func DefaultConfig() Config {
	return Config{
		Engine:            EngineONNX,
		ModelPath:         "yolov8n.onnx",
		InputShape:        image.Point{X: 640, Y: 640},
		NumClasses:        80,
		NMSThreshold:      0.45,
		ExecutionProvider: CPUExecutionProvider,
	}
}

// ErrUnsupportedEngine is returned by NewDetector for unknown engines.
var ErrUnsupportedEngine = errors.New("unsupported inference engine")

// NewDetector creates the detector selected by cfg.Engine.
//
// Arguments:
//   - cfg: The engine configuration.
//
// Returns:
//   - Detector: The loaded detector.
//   - error: An error if the model cannot be loaded.
func NewDetector(cfg Config) (Detector, error) {
	switch cfg.Engine {
	case EngineONNX:
		return NewONNXDetector(cfg)
	case EngineOpenCV:
		return NewDNNDetector(cfg)
	default:
		return nil, errors.Wrapf(ErrUnsupportedEngine, "engine %q", cfg.Engine)
	}
}

// Seq returns a sequence yielding detections in slice order.
func Seq(detections []Detection) iter.Seq[Detection] {
	return func(yield func(Detection) bool) {
		for _, d := range detections {
			if !yield(d) {
				return
			}
		}
	}
}
