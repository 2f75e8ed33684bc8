// Package annotator - The interactive loop that reads frames, runs detection,
// draws category styled overlays and reacts to the keyboard.
package annotator

import (
	"context"
	"iter"
	"time"

	"github.com/nvr-ai/go-annotate/inference"
	"github.com/nvr-ai/go-annotate/interaction"
	"github.com/nvr-ai/go-annotate/logger"
	"github.com/nvr-ai/go-annotate/metrics"
	"github.com/nvr-ai/go-annotate/models"
	"github.com/nvr-ai/go-annotate/overlay"
	"github.com/nvr-ai/go-annotate/profiler"
	"github.com/nvr-ai/go-annotate/video"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// ConfidenceThreshold is the minimum score a detection needs to be drawn.
const ConfidenceThreshold float32 = 0.4

// DefaultPollDelay is the key poll wait in milliseconds.
const DefaultPollDelay = 1

// ErrStopped is returned by Run once the annotator has released its resources.
var ErrStopped = errors.New("annotator already stopped")

// StopReason tells why Run returned.
type StopReason int

const (
	// StopQuit means the user pressed the quit key.
	StopQuit StopReason = iota
	// StopEndOfStream means the source had no more frames.
	StopEndOfStream
)

// String returns the reason name.
func (r StopReason) String() string {
	if r == StopQuit {
		return "quit"
	}
	return "end of stream"
}

// Summary describes a finished run.
type Summary struct {
	Frames int
	Reason StopReason
}

// Config wires the annotator to its collaborators. Source, Display and
// Detector are required; everything else has a default.
type Config struct {
	Source   video.Source
	Display  video.Display
	Detector inference.Detector

	// Classifier maps class ids to categories (default: models.DefaultClassifier).
	Classifier *models.Classifier
	// Canvas wraps a frame for drawing (default: overlay.NewMatCanvas).
	Canvas func(*gocv.Mat) overlay.Canvas
	// Threshold is handed to the detector (default: ConfidenceThreshold).
	Threshold float32
	// PollDelay is the key wait in milliseconds (default: DefaultPollDelay).
	PollDelay int

	Logger   *logger.Logger
	Metrics  *metrics.Metrics
	Profiler *profiler.Profiler
}

// Annotator owns the frame source, the display and the interaction state for
// one run. It is not safe for concurrent use.
type Annotator struct {
	source     video.Source
	display    video.Display
	detector   inference.Detector
	classifier *models.Classifier
	canvas     func(*gocv.Mat) overlay.Canvas
	threshold  float32
	pollDelay  int

	controller *interaction.Controller
	log        *logger.Logger
	metrics    *metrics.Metrics
	profiler   *profiler.Profiler
	released   bool
}

// New creates an annotator.
//
// Arguments:
//   - cfg: The collaborators and options.
//
// Returns:
//   - *Annotator: The annotator. It takes ownership of the source and display.
//   - error: An error if a required collaborator is missing.
func New(cfg Config) (*Annotator, error) {
	if cfg.Source == nil || cfg.Display == nil || cfg.Detector == nil {
		return nil, errors.New("annotator requires a source, a display and a detector")
	}
	if cfg.Classifier == nil {
		cfg.Classifier = models.DefaultClassifier()
	}
	if cfg.Canvas == nil {
		cfg.Canvas = overlay.NewMatCanvas
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = ConfidenceThreshold
	}
	if cfg.PollDelay <= 0 {
		cfg.PollDelay = DefaultPollDelay
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNopLogger()
	}
	return &Annotator{
		source:     cfg.Source,
		display:    cfg.Display,
		detector:   cfg.Detector,
		classifier: cfg.Classifier,
		canvas:     cfg.Canvas,
		threshold:  cfg.Threshold,
		pollDelay:  cfg.PollDelay,
		controller: interaction.NewController(),
		log:        cfg.Logger,
		metrics:    cfg.Metrics,
		profiler:   cfg.Profiler,
	}, nil
}

// State returns the current interaction state.
func (a *Annotator) State() interaction.State {
	return a.controller.State()
}

// Run processes frames until the quit key is pressed or the source ends.
// The source and the display are released before Run returns.
//
// Arguments:
//   - ctx: Passed to the detector on every frame.
//
// Returns:
//   - Summary: The number of frames shown and why the loop stopped.
//   - error: ErrStopped if the annotator was already released.
func (a *Annotator) Run(ctx context.Context) (Summary, error) {
	if a.released {
		return Summary{}, ErrStopped
	}
	defer a.Close()

	frame := gocv.NewMat()
	defer frame.Close()

	var summary Summary
	for {
		if !a.source.Read(&frame) {
			a.log.Info("video stream ended", "frames", summary.Frames)
			summary.Reason = StopEndOfStream
			return summary, nil
		}

		if !frame.Empty() {
			done := a.profiler.StartOperation(profiler.OpFrame)
			a.ProcessFrame(ctx, &frame)
			a.display.IMShow(frame)
			done()
			summary.Frames++
			if a.metrics != nil {
				a.metrics.Frames.Inc()
			}
		}

		a.handleKey(a.display.WaitKey(a.pollDelay))
		if a.controller.State().Terminated() {
			a.log.Info("quit requested", "frames", summary.Frames)
			summary.Reason = StopQuit
			return summary, nil
		}
		if a.profiler != nil {
			a.profiler.MaybeReport(time.Now())
		}
	}
}

// ProcessFrame detects, classifies and draws every recognized object on frame
// followed by the object count.
//
// Arguments:
//   - ctx: Passed to the detector.
//   - frame: The frame to annotate in place.
//
// Returns:
//   - []string: The display names of the drawn objects in draw order.
func (a *Annotator) ProcessFrame(ctx context.Context, frame *gocv.Mat) []string {
	canvas := a.canvas(frame)
	showLabels := a.controller.State().ShowLabels

	detections := a.detect(ctx, *frame)

	done := a.profiler.StartOperation(profiler.OpRender)
	defer done()

	var names []string
	for d := range detections {
		c, ok := a.classifier.Classify(d.ClassID, d.Confidence)
		if !ok {
			if a.metrics != nil {
				a.metrics.Dropped.Inc()
			}
			continue
		}
		overlay.Render(canvas, d.Box, c, showLabels)
		names = append(names, c.Name)
		if a.metrics != nil {
			a.metrics.Detections.WithLabelValues(c.Category.String()).Inc()
		}
	}
	overlay.RenderCount(canvas, len(names))
	return names
}

// detect runs the detector. A failed frame is logged and yields no detections.
func (a *Annotator) detect(ctx context.Context, frame gocv.Mat) iter.Seq[inference.Detection] {
	done := a.profiler.StartOperation(profiler.OpInference)
	start := time.Now()
	detections, err := a.detector.Detect(ctx, frame, a.threshold)
	done()
	if a.metrics != nil {
		a.metrics.ObserveInference(time.Since(start))
	}
	if err != nil || detections == nil {
		if err != nil {
			a.log.Warn("inference failed, showing frame without detections", "error", err)
			if a.metrics != nil {
				a.metrics.InferenceFails.Inc()
			}
		}
		return inference.Seq(nil)
	}
	return detections
}

func (a *Annotator) handleKey(key int) {
	if a.controller.HandleKey(key) != interaction.LabelsToggled {
		return
	}
	visible := a.controller.State().ShowLabels
	a.log.Info("labels toggled", "visible", visible)
	if a.metrics != nil {
		a.metrics.SetLabelsVisible(visible)
	}
}

// Close releases the source and the display. Only the first call has an
// effect.
func (a *Annotator) Close() error {
	if a.released {
		return nil
	}
	a.released = true

	var firstErr error
	if err := a.source.Close(); err != nil {
		firstErr = errors.Wrap(err, "error closing video source")
	}
	if err := a.display.Close(); err != nil && firstErr == nil {
		firstErr = errors.Wrap(err, "error closing display")
	}
	if firstErr != nil {
		a.log.Warn("release failed", "error", firstErr)
	}
	return firstErr
}
