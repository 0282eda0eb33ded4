package customize

import (
	"image"
	"math"
)

const (
	// coverBuffer guarantees no visible gap at the frame edges due to rounding
	coverBuffer = 1.02
	// zoomInStep and zoomOutStep are the fixed zoom factors per invocation
	zoomInStep  = 1.1
	zoomOutStep = 0.9
	// frameBasePx is the longest side of the drawing surface in pixels
	frameBasePx = 1200
)

// Surface is the minimal drawing surface the render pipeline needs. The real
// implementation rasterizes with the imaging library; tests use a no-op.
type Surface interface {
	// DrawImageCovering places img onto the surface at the given scale and
	// rotation, centered on both axes, cropping overflow.
	DrawImageCovering(img image.Image, scale float64, rotationDegrees int) error
	// Encode returns the surface contents as JPEG bytes
	Encode() ([]byte, error)
	// Dispose releases the surface; the canvas is rebuilt, never mutated in
	// place, when its sizing parameters change
	Dispose()
}

// SurfaceFactory creates drawing surfaces with fixed pixel dimensions
type SurfaceFactory func(width, height int) Surface

// CanvasState holds the transient render parameters of the customization
// canvas. It is owned by a single session and recreated whenever the size
// selection or the design template changes.
type CanvasState struct {
	Scale           float64
	RotationDegrees int // running total, +90 per rotate, not normalized
	AspectRatio     float64
	FrameWidth      int
	FrameHeight     int
	ImageWidth      int
	ImageHeight     int

	surface Surface
}

// FrameDimensions derives the pixel dimensions of the drawing surface from a
// template aspect ratio, keeping the longest side at frameBasePx.
func FrameDimensions(aspectRatio float64) (width, height int) {
	if aspectRatio <= 0 {
		aspectRatio = 1
	}
	if aspectRatio >= 1 {
		return frameBasePx, int(math.Round(frameBasePx / aspectRatio))
	}
	return int(math.Round(frameBasePx * aspectRatio)), frameBasePx
}

// CoverFitScale computes the minimum scale at which an image of w×h fully
// covers a frame of frameW×frameH, times the cover buffer. The result s
// always satisfies s×w ≥ frameW and s×h ≥ frameH.
func CoverFitScale(imageW, imageH, frameW, frameH int) float64 {
	if imageW <= 0 || imageH <= 0 {
		return 1
	}
	scaleX := float64(frameW) / float64(imageW)
	scaleY := float64(frameH) / float64(imageH)
	return math.Max(scaleX, scaleY) * coverBuffer
}

// NewCanvasState builds a canvas for an image against a template's frame.
// The image starts at cover-fit scale, centered, unrotated.
func NewCanvasState(imageW, imageH int, aspectRatio float64, factory SurfaceFactory) *CanvasState {
	frameW, frameH := FrameDimensions(aspectRatio)
	state := &CanvasState{
		Scale:       CoverFitScale(imageW, imageH, frameW, frameH),
		AspectRatio: aspectRatio,
		FrameWidth:  frameW,
		FrameHeight: frameH,
		ImageWidth:  imageW,
		ImageHeight: imageH,
	}
	if factory != nil {
		state.surface = factory(frameW, frameH)
	}
	return state
}

// ZoomIn multiplies the current scale by the fixed zoom-in step. There is no
// enforced upper bound.
func (c *CanvasState) ZoomIn() {
	c.Scale *= zoomInStep
}

// ZoomOut multiplies the current scale by the fixed zoom-out step. The source
// behavior does not clamp at the cover-fit floor, so zooming below it can
// expose gaps; kept as-is.
func (c *CanvasState) ZoomOut() {
	c.Scale *= zoomOutStep
}

// Rotate adds 90 degrees to the running rotation. Consumers apply it as a
// display transform, so the value wraps conceptually at 360 without being
// normalized here.
func (c *CanvasState) Rotate() {
	c.RotationDegrees += 90
}

// Render draws the image onto the surface with the current transform. When
// the canvas has no surface (tests) it is a no-op.
func (c *CanvasState) Render(img image.Image) error {
	if c.surface == nil {
		return nil
	}
	return c.surface.DrawImageCovering(img, c.Scale, c.RotationDegrees)
}

// Encode returns the rendered surface as JPEG bytes
func (c *CanvasState) Encode() ([]byte, error) {
	if c.surface == nil {
		return nil, &DecodeError{Message: "canvas has no drawing surface"}
	}
	return c.surface.Encode()
}

// Dispose releases the underlying surface
func (c *CanvasState) Dispose() {
	if c.surface != nil {
		c.surface.Dispose()
		c.surface = nil
	}
}
