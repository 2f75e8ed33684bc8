// Package inference - Inference sessions.
package inference

import (
	"os"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// Session represents a model session from the onnxruntime.
type Session struct {
	Session *ort.AdvancedSession
	Input   *ort.Tensor[float32]
	Output  *ort.Tensor[float32]
}

// NewSession loads a YOLOv8-style model with a single "images" input and a
// single "output0" output.
//
// Arguments:
//   - cfg: The engine configuration.
//
// Returns:
//   - *Session: The loaded session.
//   - error: An error if the runtime or the model cannot be loaded.
func NewSession(cfg Config) (*Session, error) {
	libPath := cfg.SharedLibraryPath
	if libPath == "" {
		var err error
		if libPath, err = GetSharedLibPath(); err != nil {
			return nil, err
		}
	}
	if _, err := os.Stat(libPath); err != nil {
		return nil, errors.Wrapf(err, "ONNX Runtime library not found at %s", libPath)
	}
	if _, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, errors.Wrapf(err, "model file not found: %s", cfg.ModelPath)
	}

	if !ort.IsInitialized() {
		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "error initializing ORT environment")
		}
	}

	inputShape := ort.NewShape(1, 3, int64(cfg.InputShape.Y), int64(cfg.InputShape.X))
	inputTensor, err := ort.NewEmptyTensor[float32](inputShape)
	if err != nil {
		return nil, errors.Wrap(err, "error creating input tensor")
	}

	anchors := anchorCount(cfg.InputShape.X, cfg.InputShape.Y)
	outputShape := ort.NewShape(1, int64(4+cfg.NumClasses), int64(anchors))
	outputTensor, err := ort.NewEmptyTensor[float32](outputShape)
	if err != nil {
		inputTensor.Destroy()
		return nil, errors.Wrap(err, "error creating output tensor")
	}

	options, err := newSessionOptions(cfg.ExecutionProvider)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, err
	}
	defer options.Destroy()

	session, err := ort.NewAdvancedSession(
		cfg.ModelPath,
		[]string{"images"},
		[]string{"output0"},
		[]ort.Value{inputTensor},
		[]ort.Value{outputTensor},
		options,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, errors.Wrap(err, "error creating ORT session")
	}

	return &Session{
		Session: session,
		Input:   inputTensor,
		Output:  outputTensor,
	}, nil
}

// anchorCount returns the number of YOLOv8 anchors for an input size, one per
// cell of the stride 8, 16 and 32 grids.
func anchorCount(width, height int) int {
	total := 0
	for _, stride := range []int{8, 16, 32} {
		total += (width / stride) * (height / stride)
	}
	return total
}

// Close releases the resources associated with the Session.
func (s *Session) Close() error {
	var err error
	if s.Input != nil {
		err = s.Input.Destroy()
		s.Input = nil
	}
	if s.Output != nil {
		if destroyErr := s.Output.Destroy(); err == nil {
			err = destroyErr
		}
		s.Output = nil
	}
	if s.Session != nil {
		if destroyErr := s.Session.Destroy(); err == nil {
			err = destroyErr
		}
		s.Session = nil
	}
	return errors.Wrap(err, "error destroying ORT session")
}
