package customize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoverFitScaleCoversFrame(t *testing.T) {
	// W=500, H=375 (4:3) with an 800×800 image: max(500/800, 375/800)×1.02
	scale := CoverFitScale(800, 800, 500, 375)
	assert.InDelta(t, 0.6375, scale, 0.0001)

	// No gaps on either axis
	assert.GreaterOrEqual(t, scale*800, 500.0)
	assert.GreaterOrEqual(t, scale*800, 375.0)
}

func TestCoverFitScaleInvariant(t *testing.T) {
	cases := []struct {
		imageW, imageH, frameW, frameH int
	}{
		{800, 800, 500, 375},
		{4000, 3000, 900, 1200},
		{640, 480, 1200, 1200},
		{100, 2000, 1200, 900},
		{3000, 150, 600, 600},
	}

	for _, tc := range cases {
		scale := CoverFitScale(tc.imageW, tc.imageH, tc.frameW, tc.frameH)
		assert.GreaterOrEqual(t, scale*float64(tc.imageW), float64(tc.frameW),
			"image %dx%d must cover frame width %d", tc.imageW, tc.imageH, tc.frameW)
		assert.GreaterOrEqual(t, scale*float64(tc.imageH), float64(tc.frameH),
			"image %dx%d must cover frame height %d", tc.imageW, tc.imageH, tc.frameH)
	}
}

func TestFrameDimensionsFollowAspectRatio(t *testing.T) {
	w, h := FrameDimensions(3.0 / 4.0) // portrait
	assert.Equal(t, 1200, h)
	assert.Equal(t, 900, w)

	w, h = FrameDimensions(4.0 / 3.0) // landscape
	assert.Equal(t, 1200, w)
	assert.Equal(t, 900, h)

	w, h = FrameDimensions(1)
	assert.Equal(t, 1200, w)
	assert.Equal(t, 1200, h)
}

func TestNewCanvasStateStartsAtCoverFit(t *testing.T) {
	canvas := NewCanvasState(800, 800, 4.0/3.0, nil)

	frameW, frameH := FrameDimensions(4.0 / 3.0)
	assert.Equal(t, frameW, canvas.FrameWidth)
	assert.Equal(t, frameH, canvas.FrameHeight)
	assert.InDelta(t, CoverFitScale(800, 800, frameW, frameH), canvas.Scale, 1e-9)
	assert.Equal(t, 0, canvas.RotationDegrees)
}

func TestZoomSteps(t *testing.T) {
	canvas := NewCanvasState(1000, 1000, 1, nil)
	start := canvas.Scale

	canvas.ZoomIn()
	assert.InDelta(t, start*1.1, canvas.Scale, 1e-9)

	canvas.ZoomOut()
	canvas.ZoomOut()
	// No hard floor at cover-fit: zooming out below it is allowed
	assert.InDelta(t, start*1.1*0.9*0.9, canvas.Scale, 1e-9)
	assert.Less(t, canvas.Scale, start)
}

func TestRotationWrapsAfterFourTurns(t *testing.T) {
	canvas := NewCanvasState(1000, 1000, 1, nil)

	for i := 0; i < 4; i++ {
		canvas.Rotate()
	}

	// Stored as a running total, wrapping conceptually at 360
	assert.Equal(t, 360, canvas.RotationDegrees)
	assert.Equal(t, 0, canvas.RotationDegrees%360)
}

func TestCoverFitScaleDegenerateImage(t *testing.T) {
	assert.False(t, math.IsInf(CoverFitScale(0, 0, 500, 375), 1))
	assert.Equal(t, 1.0, CoverFitScale(0, 100, 500, 375))
}
