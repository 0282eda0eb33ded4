package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"

	"estampa-studio/customize"
)

// surfaceQuality is the JPEG quality of rendered canvases
const surfaceQuality = 85

// imagingSurface is the real drawing surface behind the canvas pipeline,
// rasterizing with the imaging library. Implements customize.Surface.
type imagingSurface struct {
	width  int
	height int
	canvas *image.NRGBA
}

// NewImagingSurface creates a drawing surface of the given pixel dimensions
func NewImagingSurface(width, height int) customize.Surface {
	return &imagingSurface{width: width, height: height}
}

// Ensure imagingSurface implements customize.Surface
var _ customize.Surface = (*imagingSurface)(nil)

// DrawImageCovering places img at the given scale and rotation, centered on
// both axes. Overflow past the frame edges is cropped by the paste.
func (s *imagingSurface) DrawImageCovering(img image.Image, scale float64, rotationDegrees int) error {
	if img == nil {
		return &customize.DecodeError{Message: "no image to draw"}
	}

	rotated := img
	turns := ((rotationDegrees/90)%4 + 4) % 4
	for i := 0; i < turns; i++ {
		rotated = imaging.Rotate90(rotated)
	}

	bounds := rotated.Bounds()
	scaledW := int(math.Round(float64(bounds.Dx()) * scale))
	scaledH := int(math.Round(float64(bounds.Dy()) * scale))
	if scaledW < 1 || scaledH < 1 {
		return &customize.DecodeError{Message: "image scaled to zero size"}
	}
	resized := imaging.Resize(rotated, scaledW, scaledH, imaging.Lanczos)

	base := imaging.New(s.width, s.height, color.NRGBA{R: 245, G: 245, B: 245, A: 255})
	s.canvas = imaging.PasteCenter(base, resized)
	return nil
}

// Encode returns the surface contents as JPEG bytes
func (s *imagingSurface) Encode() ([]byte, error) {
	if s.canvas == nil {
		return nil, &customize.DecodeError{Message: "nothing rendered on the surface"}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, s.canvas, imaging.JPEG, imaging.JPEGQuality(surfaceQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode surface: %w", err)
	}
	return buf.Bytes(), nil
}

// Dispose drops the pixel buffer
func (s *imagingSurface) Dispose() {
	s.canvas = nil
}
