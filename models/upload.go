package models

import "math"

// QualityRating classifies an upload by its estimated print DPI
type QualityRating string

const (
	QualityExcellent QualityRating = "excellent" // >= 300 DPI
	QualityGood      QualityRating = "good"      // >= 150 DPI
	QualityFair      QualityRating = "fair"      // >= 72 DPI
	QualityLow       QualityRating = "low"
)

// EstimateDPI estimates the print DPI of a pixel image against a physical
// print size: min(pixelWidth/widthInches, pixelHeight/heightInches). The
// rating is derived state: it is re-computed whenever the target size changes.
func EstimateDPI(pixelWidth, pixelHeight int, target PrintSize) float64 {
	if target.WidthInches <= 0 || target.HeightInches <= 0 {
		return 0
	}
	return math.Min(float64(pixelWidth)/target.WidthInches, float64(pixelHeight)/target.HeightInches)
}

// RateQuality maps an estimated DPI to a quality rating
func RateQuality(dpi float64) QualityRating {
	switch {
	case dpi >= 300:
		return QualityExcellent
	case dpi >= 150:
		return QualityGood
	case dpi >= 72:
		return QualityFair
	default:
		return QualityLow
	}
}

// UploadedImage represents one user-supplied photograph.
// Data is the raw upload handle: it is carried untouched from ingestion to
// order submission so no quality is lost before persistence. Only the preview
// is re-encoded.
type UploadedImage struct {
	FileName       string        `json:"fileName"`
	Data           []byte        `json:"-"`
	PreviewDataURI string        `json:"previewDataUri,omitempty"`
	PixelWidth     int           `json:"pixelWidth"`
	PixelHeight    int           `json:"pixelHeight"`
	SizeBytes      int64         `json:"sizeBytes"`
	Quality        QualityRating `json:"quality"`
}
