package service

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estampa-studio/customize"
	"estampa-studio/models"
)

// pngBytes builds an in-memory PNG of the given dimensions
func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

var squareInch = models.PrintSize{WidthInches: 1, HeightInches: 1}

func TestIngestRejectsNonImage(t *testing.T) {
	s := NewIngestService()

	_, err := s.Ingest("notes.txt", []byte("this is definitely not an image"), 10<<20, squareInch)
	require.Error(t, err)
	assert.True(t, customize.IsValidationError(err))
}

func TestIngestRejectsOversizedFile(t *testing.T) {
	s := NewIngestService()
	data := pngBytes(t, 64, 64)

	_, err := s.Ingest("big.png", data, int64(len(data)-1), squareInch)
	require.Error(t, err)
	assert.True(t, customize.IsValidationError(err))
}

func TestIngestRejectsEmptyFile(t *testing.T) {
	s := NewIngestService()
	_, err := s.Ingest("empty.png", nil, 10<<20, squareInch)
	assert.True(t, customize.IsValidationError(err))
}

func TestIngestDecodesDimensionsAndPreview(t *testing.T) {
	s := NewIngestService()
	data := pngBytes(t, 320, 200)

	img, err := s.Ingest("photo.png", data, 10<<20, squareInch)
	require.NoError(t, err)

	assert.Equal(t, 320, img.PixelWidth)
	assert.Equal(t, 200, img.PixelHeight)
	assert.Equal(t, int64(len(data)), img.SizeBytes)
	assert.True(t, strings.HasPrefix(img.PreviewDataURI, "data:image/jpeg;base64,"))

	// The raw handle is the original bytes, untouched
	assert.Equal(t, data, img.Data)
}

func TestIngestQualityRating(t *testing.T) {
	s := NewIngestService()

	cases := []struct {
		width, height int
		expected      models.QualityRating
	}{
		{320, 300, models.QualityExcellent}, // min(320, 300) = 300 DPI
		{150, 200, models.QualityGood},
		{80, 72, models.QualityFair},
		{50, 60, models.QualityLow},
	}

	for _, tc := range cases {
		img, err := s.Ingest("q.png", pngBytes(t, tc.width, tc.height), 10<<20, squareInch)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, img.Quality, "%dx%d against 1x1 inch", tc.width, tc.height)
	}
}

func TestRateQualityThresholds(t *testing.T) {
	assert.Equal(t, models.QualityExcellent, models.RateQuality(300))
	assert.Equal(t, models.QualityGood, models.RateQuality(299.9))
	assert.Equal(t, models.QualityGood, models.RateQuality(150))
	assert.Equal(t, models.QualityFair, models.RateQuality(149))
	assert.Equal(t, models.QualityFair, models.RateQuality(72))
	assert.Equal(t, models.QualityLow, models.RateQuality(71))
}
