// Package config - YAML configuration of the annotator with defaults and
// validation.
package config

import (
	"image"
	"os"
	"slices"
	"time"

	"github.com/nvr-ai/go-annotate/inference"
	"github.com/nvr-ai/go-annotate/logger"
	"github.com/nvr-ai/go-annotate/video"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the full annotator configuration.
type Config struct {
	Source   SourceConfig   `yaml:"source"`
	Display  DisplayConfig  `yaml:"display"`
	Model    ModelConfig    `yaml:"model"`
	Log      logger.Config  `yaml:"log"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Profiler ProfilerConfig `yaml:"profiler"`
}

// SourceConfig selects the frame source. A non-empty Video wins over Device.
type SourceConfig struct {
	Device int    `yaml:"device"`
	Video  string `yaml:"video"`
}

// DisplayConfig configures the output window.
type DisplayConfig struct {
	Title       string `yaml:"title"`
	PollDelayMS int    `yaml:"poll_delay_ms"`
}

// ModelConfig configures the detection backend.
type ModelConfig struct {
	Backend             string  `yaml:"backend"`
	Path                string  `yaml:"path"`
	InputWidth          int     `yaml:"input_width"`
	InputHeight         int     `yaml:"input_height"`
	ConfidenceThreshold float32 `yaml:"confidence_threshold"`
	NMSThreshold        float32 `yaml:"nms_threshold"`
	SharedLibrary       string  `yaml:"shared_library"`
	ExecutionProvider   string  `yaml:"execution_provider"`
}

// MetricsConfig enables the Prometheus endpoint when Listen is set.
type MetricsConfig struct {
	Listen string `yaml:"listen"`
}

// ProfilerConfig enables periodic timing reports.
type ProfilerConfig struct {
	Enabled        bool          `yaml:"enabled"`
	ReportInterval time.Duration `yaml:"report_interval"`
}

// Defaults returns the configuration used when no file is given.
func Defaults() Config {
	return Config{
		Source:  SourceConfig{Device: 0},
		Display: DisplayConfig{Title: "Enhanced Object Detection", PollDelayMS: 1},
		Model: ModelConfig{
			Backend:             string(inference.EngineONNX),
			Path:                "yolov8n.onnx",
			InputWidth:          640,
			InputHeight:         640,
			ConfidenceThreshold: 0.4,
			NMSThreshold:        0.45,
			ExecutionProvider:   string(inference.CPUExecutionProvider),
		},
		Log:      logger.DefaultConfig(),
		Profiler: ProfilerConfig{ReportInterval: 10 * time.Second},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults.
//
// Arguments:
//   - path: The configuration file path, or "".
//
// Returns:
//   - *Config: The validated configuration.
//   - error: An error if the file cannot be read, parsed or validated.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "failed to read configuration file")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrapf(err, "failed to parse configuration %s", path)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if t := c.Model.ConfidenceThreshold; t <= 0 || t > 1 {
		return errors.Errorf("model.confidence_threshold must be in (0,1], got %v", t)
	}
	if t := c.Model.NMSThreshold; t <= 0 || t > 1 {
		return errors.Errorf("model.nms_threshold must be in (0,1], got %v", t)
	}
	if !slices.Contains(inference.Engines, inference.EngineType(c.Model.Backend)) {
		return errors.Errorf("model.backend %q is not one of %v", c.Model.Backend, inference.Engines)
	}
	if c.Model.InputWidth <= 0 || c.Model.InputHeight <= 0 {
		return errors.Errorf("model input size must be positive, got %dx%d", c.Model.InputWidth, c.Model.InputHeight)
	}
	if c.Model.Path == "" {
		return errors.New("model.path is required")
	}
	switch inference.Provider(c.Model.ExecutionProvider) {
	case "", inference.CPUExecutionProvider, inference.CoreMLExecutionProvider, inference.OpenVINOExecutionProvider:
	default:
		return errors.Errorf("model.execution_provider %q is not supported", c.Model.ExecutionProvider)
	}
	if c.Display.PollDelayMS < 0 {
		return errors.Errorf("display.poll_delay_ms must not be negative, got %d", c.Display.PollDelayMS)
	}
	if c.Source.Device < 0 {
		return errors.Errorf("source.device must not be negative, got %d", c.Source.Device)
	}
	if c.Profiler.ReportInterval < 0 {
		return errors.Errorf("profiler.report_interval must not be negative, got %v", c.Profiler.ReportInterval)
	}
	return nil
}

// Inference maps the model section onto the detector configuration.
func (c *Config) Inference() inference.Config {
	ic := inference.DefaultConfig()
	ic.Engine = inference.EngineType(c.Model.Backend)
	ic.ModelPath = c.Model.Path
	ic.InputShape = image.Pt(c.Model.InputWidth, c.Model.InputHeight)
	ic.NMSThreshold = c.Model.NMSThreshold
	ic.SharedLibraryPath = c.Model.SharedLibrary
	if c.Model.ExecutionProvider != "" {
		ic.ExecutionProvider = inference.Provider(c.Model.ExecutionProvider)
	}
	return ic
}

// Input maps the source section onto the video input configuration.
func (c *Config) Input() (video.InputConfig, error) {
	return video.NewInputConfig(c.Source.Device, c.Source.Video)
}
