// Package postprocess - Postprocessing utilities for detection models.
package postprocess

import "github.com/nvr-ai/go-annotate/images"

// Result represents a single decoded detection.
type Result struct {
	// The bounding box of the result, in frame pixels.
	Box images.Rect
	// The confidence score of the result.
	Score float32
	// The predicted class index of the result.
	Class int
}
