package inference

import (
	"runtime"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// Provider represents different ONNX Runtime execution providers
type Provider string

const (
	// CPUExecutionProvider uses CPU for inference
	CPUExecutionProvider Provider = "cpu"

	// CoreMLExecutionProvider uses Apple CoreML for macOS/iOS acceleration
	CoreMLExecutionProvider Provider = "coreml"

	// OpenVINOExecutionProvider uses Intel OpenVINO for inference optimization
	OpenVINOExecutionProvider Provider = "openvino"
)

// newSessionOptions builds onnxruntime session options for a provider.
//
// Arguments:
//   - provider: The execution provider to append. Empty means CPU.
//
// Returns:
//   - *ort.SessionOptions: The options. The caller must Destroy them.
//   - error: An error if the options or the provider cannot be set up.
func newSessionOptions(provider Provider) (*ort.SessionOptions, error) {
	options, err := ort.NewSessionOptions()
	if err != nil {
		return nil, errors.Wrap(err, "error creating ORT session options")
	}

	// Threads used to parallelize execution within graph nodes.
	if err := options.SetIntraOpNumThreads(4); err != nil {
		options.Destroy()
		return nil, errors.Wrap(err, "error setting intra op threads")
	}
	// Threads used to parallelize execution across graph nodes.
	if err := options.SetInterOpNumThreads(2); err != nil {
		options.Destroy()
		return nil, errors.Wrap(err, "error setting inter op threads")
	}

	switch provider {
	case "", CPUExecutionProvider:
	case CoreMLExecutionProvider:
		if err := options.AppendExecutionProviderCoreML(0); err != nil {
			options.Destroy()
			return nil, errors.Wrap(err, "error enabling CoreML")
		}
	case OpenVINOExecutionProvider:
		err := options.AppendExecutionProviderOpenVINO(map[string]string{
			"device_type":    "CPU",
			"precision":      "FP32",
			"num_of_threads": "4",
		})
		if err != nil {
			options.Destroy()
			return nil, errors.Wrap(err, "error enabling OpenVINO")
		}
	default:
		options.Destroy()
		return nil, errors.Errorf("unsupported execution provider %q", provider)
	}

	return options, nil
}

// GetSharedLibPath returns the path to the onnxruntime shared library for the
// current platform.
//
// Returns:
//   - string: The path to the shared library.
//   - error: An error if the platform is not supported.
func GetSharedLibPath() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if runtime.GOARCH == "amd64" {
			return "./third_party/onnxruntime.dll", nil
		}
	case "darwin":
		return "./third_party/libonnxruntime.dylib", nil
	case "linux":
		if runtime.GOARCH == "arm64" {
			return "./third_party/onnxruntime_arm64.so", nil
		}
		return "./third_party/onnxruntime.so", nil
	}
	return "", errors.Errorf("no onnxruntime library available for %s/%s", runtime.GOOS, runtime.GOARCH)
}
