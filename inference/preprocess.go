package inference

import (
	"image"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// PrepareInput prepares the input for the ONNX model before inference is
// called.
//
// The image is resized to shape and written as planar RGB normalized to [0,1].
//
// Arguments:
//   - img: The image to prepare.
//   - shape: The model input size (width, height).
//   - dst: The destination tensor data to populate.
//
// Returns:
//   - error: An error if the input preparation fails.
func PrepareInput(img image.Image, shape image.Point, dst []float32) error {
	channelSize := shape.X * shape.Y
	if channelSize <= 0 {
		return errors.Errorf("invalid input shape %v", shape)
	}
	if len(dst) < channelSize*3 {
		return errors.Errorf("destination tensor only holds %d floats, needs %d (make sure it's the right shape!)",
			len(dst), channelSize*3)
	}
	red := dst[0:channelSize]
	green := dst[channelSize : channelSize*2]
	blue := dst[channelSize*2 : channelSize*3]

	img = resize.Resize(uint(shape.X), uint(shape.Y), img, resize.Bilinear)
	bounds := img.Bounds()

	i := 0
	for y := 0; y < shape.Y; y++ {
		for x := 0; x < shape.X; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			red[i] = float32(r>>8) / 255.0
			green[i] = float32(g>>8) / 255.0
			blue[i] = float32(b>>8) / 255.0
			i++
		}
	}
	return nil
}
