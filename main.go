package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/akamensky/argparse"
	"github.com/nvr-ai/go-annotate/annotator"
	"github.com/nvr-ai/go-annotate/config"
	"github.com/nvr-ai/go-annotate/inference"
	"github.com/nvr-ai/go-annotate/logger"
	"github.com/nvr-ai/go-annotate/metrics"
	"github.com/nvr-ai/go-annotate/models"
	"github.com/nvr-ai/go-annotate/profiler"
	"github.com/nvr-ai/go-annotate/video"
	"github.com/pkg/errors"
)

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	parser := argparse.NewParser("annotate", "Annotate a live video stream with categorized object detections")
	configPath := parser.String("c", "config", &argparse.Options{Help: "Path to YAML configuration file", Required: false, Default: ""})
	device := parser.Int("d", "device", &argparse.Options{Help: "Camera device index", Required: false, Default: -1})
	videoPath := parser.String("v", "video", &argparse.Options{Help: "Path to video file (.mp4, .avi, .mov, .mkv)", Required: false, Default: ""})
	modelPath := parser.String("m", "model", &argparse.Options{Help: "Path to YOLO ONNX model file", Required: false, Default: ""})
	backend := parser.Selector("b", "backend", []string{string(inference.EngineONNX), string(inference.EngineOpenCV)},
		&argparse.Options{Help: "Inference backend", Required: false})
	if err := parser.Parse(args); err != nil {
		fmt.Print(parser.Usage(err))
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	if *device >= 0 {
		cfg.Source.Device = *device
	}
	if *videoPath != "" {
		cfg.Source.Video = *videoPath
	}
	if *modelPath != "" {
		cfg.Model.Path = *modelPath
	}
	if *backend != "" {
		cfg.Model.Backend = *backend
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	input, err := cfg.Input()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Could not open video source: %v\n", err)
		return 1
	}
	source, err := video.OpenSource(input)
	if err != nil {
		if errors.Cause(err) == video.ErrOpenSource {
			fmt.Fprintf(os.Stderr, "Error: Could not open video source: %s\n", input)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	log.Info("video source opened", "input", input.String())

	detector, err := inference.NewDetector(cfg.Inference())
	if err != nil {
		source.Close()
		fmt.Fprintf(os.Stderr, "Error: failed to load detection model: %v\n", err)
		return 1
	}
	defer detector.Close()
	log.Info("detector ready", "backend", cfg.Model.Backend, "model", cfg.Model.Path,
		"threshold", cfg.Model.ConfidenceThreshold)

	m := metrics.New()
	if cfg.Metrics.Listen != "" {
		srv := m.NewServer(cfg.Metrics.Listen)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server stopped", "error", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		log.Info("serving metrics", "listen", cfg.Metrics.Listen)
	}

	var prof *profiler.Profiler
	if cfg.Profiler.Enabled {
		prof = profiler.New(log, profiler.Options{ReportInterval: cfg.Profiler.ReportInterval})
	}

	classifier := models.DefaultClassifier()
	annotator.PrintBanner(os.Stdout, classifier.Classes().Len())

	display := video.OpenDisplay(cfg.Display.Title)
	a, err := annotator.New(annotator.Config{
		Source:     source,
		Display:    display,
		Detector:   detector,
		Classifier: classifier,
		Threshold:  cfg.Model.ConfidenceThreshold,
		PollDelay:  cfg.Display.PollDelayMS,
		Logger:     log,
		Metrics:    m,
		Profiler:   prof,
	})
	if err != nil {
		source.Close()
		display.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	summary, err := a.Run(context.Background())
	if err != nil {
		log.Error("annotation stopped", "error", err)
		return 1
	}
	if prof != nil {
		prof.Report(time.Now())
	}
	log.Info("annotation finished", "frames", summary.Frames, "reason", summary.Reason.String())
	return 0
}
