package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"log"
	"net/http"
	"strings"

	"github.com/disintegration/imaging"

	"estampa-studio/customize"
	"estampa-studio/models"
)

const (
	// previewMaxDim caps the longest side of the generated preview
	previewMaxDim = 480
	// previewQuality is the JPEG quality of the preview data URI
	previewQuality = 75
)

// IngestService validates user-supplied image files and turns them into
// UploadedImage records. The raw bytes are kept untouched as the handle
// forwarded at order submission; only the preview is re-encoded.
type IngestService struct{}

// NewIngestService creates a new IngestService
func NewIngestService() *IngestService {
	return &IngestService{}
}

// Ingest validates and decodes one uploaded file. maxBytes is the flow's
// upload limit (10 MB photo flows, 5 MB logo flows); target is the physical
// print size used for the DPI quality estimate. Validation failures return a
// ValidationError and mutate nothing; undecodable image data returns a
// DecodeError.
func (s *IngestService) Ingest(fileName string, data []byte, maxBytes int64, target models.PrintSize) (*models.UploadedImage, error) {
	if len(data) == 0 {
		return nil, customize.NewValidationError("el archivo está vacío")
	}

	contentType := http.DetectContentType(data)
	if !strings.HasPrefix(contentType, "image/") {
		log.Printf("❌ Ingest: rejected %s, content type %s is not an image", fileName, contentType)
		return nil, customize.NewValidationError(fmt.Sprintf("el archivo debe ser una imagen, no %s", contentType))
	}

	if int64(len(data)) > maxBytes {
		log.Printf("❌ Ingest: rejected %s, %d bytes exceeds limit of %d", fileName, len(data), maxBytes)
		return nil, customize.NewValidationError(fmt.Sprintf("la imagen supera el límite de %d MB", maxBytes>>20))
	}

	config, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		log.Printf("❌ Ingest: failed to decode %s: %v", fileName, err)
		return nil, &customize.DecodeError{Message: fmt.Sprintf("no se pudo leer la imagen: %v", err)}
	}

	dpi := models.EstimateDPI(config.Width, config.Height, target)
	quality := models.RateQuality(dpi)
	log.Printf("📸 Ingest: %s decoded, format=%s, %dx%d px, ~%.0f DPI (%s)",
		fileName, format, config.Width, config.Height, dpi, quality)

	preview, err := s.buildPreview(data)
	if err != nil {
		return nil, err
	}

	return &models.UploadedImage{
		FileName:       fileName,
		Data:           data,
		PreviewDataURI: preview,
		PixelWidth:     config.Width,
		PixelHeight:    config.Height,
		SizeBytes:      int64(len(data)),
		Quality:        quality,
	}, nil
}

// buildPreview downscales the image and encodes it as a base64 JPEG data URI
func (s *IngestService) buildPreview(data []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", &customize.DecodeError{Message: fmt.Sprintf("no se pudo leer la imagen: %v", err)}
	}

	bounds := img.Bounds()
	if bounds.Dx() > previewMaxDim || bounds.Dy() > previewMaxDim {
		img = imaging.Fit(img, previewMaxDim, previewMaxDim, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(previewQuality)); err != nil {
		return "", fmt.Errorf("failed to encode preview: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
