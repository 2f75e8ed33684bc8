// Package video - Frame source and display sink around gocv.
package video

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Source produces frames. *gocv.VideoCapture satisfies it.
type Source interface {
	// Read fills frame with the next frame and reports whether one was available.
	Read(frame *gocv.Mat) bool
	// Close releases the device or file.
	Close() error
}

// Display presents frames and polls the keyboard. *gocv.Window satisfies it.
type Display interface {
	// IMShow presents a frame.
	IMShow(frame gocv.Mat)
	// WaitKey waits up to delay milliseconds for a key and returns its code,
	// or -1 when none was pressed.
	WaitKey(delay int) int
	// Close destroys the window.
	Close() error
}

// InputType represents the type of input being processed
type InputType int

const (
	// InputCamera reads from a capture device.
	InputCamera InputType = iota
	// InputVideo reads from a video file.
	InputVideo
)

// SupportedVideoExtensions lists the accepted video file extensions.
var SupportedVideoExtensions = []string{".mp4", ".avi", ".mov", ".mkv"}

// ErrOpenSource marks a frame source that could not be opened.
var ErrOpenSource = errors.New("could not open video source")

// InputConfig holds the input configuration
type InputConfig struct {
	Type     InputType
	Path     string
	DeviceID int
}

// String describes the input for banners and logs.
func (c InputConfig) String() string {
	if c.Type == InputVideo {
		return fmt.Sprintf("Video: %s", c.Path)
	}
	return fmt.Sprintf("Camera (Device %d)", c.DeviceID)
}

// NewInputConfig selects a video file when path is set and the camera device
// otherwise.
//
// Arguments:
//   - deviceID: The capture device index.
//   - path: Optional video file path.
//
// Returns:
//   - InputConfig: The input configuration.
//   - error: An error if the video file is missing or has an unsupported extension.
func NewInputConfig(deviceID int, path string) (InputConfig, error) {
	if path == "" {
		return InputConfig{Type: InputCamera, DeviceID: deviceID}, nil
	}
	if err := validateFile(path, SupportedVideoExtensions); err != nil {
		return InputConfig{}, errors.Wrap(err, "video validation error")
	}
	return InputConfig{Type: InputVideo, Path: path}, nil
}

// validateFile checks if the file exists and has a supported extension
func validateFile(filePath string, supportedExtensions []string) error {
	if _, err := os.Stat(filePath); err != nil {
		return errors.Errorf("file not found: %s", filePath)
	}

	ext := strings.ToLower(filepath.Ext(filePath))
	if !slices.Contains(supportedExtensions, ext) {
		return errors.Errorf("unsupported file extension: %s. Supported extensions: %v", ext, supportedExtensions)
	}
	return nil
}

// OpenSource opens the capture device or video file described by cfg.
//
// Returns:
//   - Source: The opened source. The caller must Close it.
//   - error: An error wrapping ErrOpenSource if it cannot be opened.
func OpenSource(cfg InputConfig) (Source, error) {
	var (
		capture *gocv.VideoCapture
		err     error
	)
	switch cfg.Type {
	case InputVideo:
		capture, err = gocv.VideoCaptureFile(cfg.Path)
	default:
		capture, err = gocv.VideoCaptureDevice(cfg.DeviceID)
	}
	if err != nil {
		if capture != nil {
			capture.Close()
		}
		return nil, errors.Wrapf(ErrOpenSource, "%s: %v", cfg, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, errors.Wrapf(ErrOpenSource, "%s", cfg)
	}
	return capture, nil
}

// OpenDisplay creates the window frames are shown in.
func OpenDisplay(title string) Display {
	return gocv.NewWindow(title)
}
