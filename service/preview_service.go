package service

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/disintegration/imaging"

	"estampa-studio/customize"
)

const (
	// collageCellPx is the pixel size of each cell in the 2×2 composite
	collageCellPx    = 600
	compositeQuality = 88
)

// PreviewService renders customization sessions: the single-photo canvas for
// non-collage templates, and the 2×2 grid composite for collage.
type PreviewService struct{}

// NewPreviewService creates a new PreviewService
func NewPreviewService() *PreviewService {
	return &PreviewService{}
}

// RenderSession renders the session's current state to JPEG bytes. The
// caller must hold the session lock.
func (s *PreviewService) RenderSession(session *customize.Session) ([]byte, error) {
	if session.Template.IsCollage {
		return s.RenderCollage(&session.Collage)
	}

	if session.Photo == nil || session.Canvas == nil {
		return nil, customize.NewValidationError("no hay foto para previsualizar")
	}

	img, err := imaging.Decode(bytes.NewReader(session.Photo.Data), imaging.AutoOrientation(true))
	if err != nil {
		// Decode failed at render time: report and leave the frame empty
		log.Printf("❌ RenderSession: decode failed for %s: %v", session.Photo.FileName, err)
		return nil, &customize.DecodeError{Message: fmt.Sprintf("no se pudo leer la imagen: %v", err)}
	}

	if err := session.Canvas.Render(img); err != nil {
		return nil, err
	}
	return session.Canvas.Encode()
}

// RenderCollage renders the 4 slots into a single 2×2 grid raster. Filled
// cells are cover-fit cropped to the cell; empty slots render as a neutral
// placeholder, never omitted.
func (s *PreviewService) RenderCollage(collage *customize.Collage) ([]byte, error) {
	grid := imaging.New(collageCellPx*2, collageCellPx*2, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	for i, slot := range collage.Slots {
		x := (i % 2) * collageCellPx
		y := (i / 2) * collageCellPx

		cell := imaging.New(collageCellPx, collageCellPx, color.NRGBA{R: 229, G: 229, B: 229, A: 255})
		if slot != nil {
			img, err := imaging.Decode(bytes.NewReader(slot.Data), imaging.AutoOrientation(true))
			if err != nil {
				log.Printf("❌ RenderCollage: decode failed for slot %d (%s): %v", i, slot.FileName, err)
				return nil, &customize.DecodeError{Message: fmt.Sprintf("no se pudo leer la imagen del espacio %d: %v", i+1, err)}
			}
			cell = imaging.Fill(img, collageCellPx, collageCellPx, imaging.Center, imaging.Lanczos)
		}

		grid = imaging.Paste(grid, cell, image.Pt(x, y))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, grid, imaging.JPEG, imaging.JPEGQuality(compositeQuality)); err != nil {
		return nil, fmt.Errorf("failed to encode collage composite: %w", err)
	}
	return buf.Bytes(), nil
}

// SubmissionImage returns the image bytes persisted at order submission: the
// raw upload handle for single-photo templates (never re-encoded, so no
// quality is lost), or the generated composite for collage.
func (s *PreviewService) SubmissionImage(session *customize.Session) (fileName string, data []byte, err error) {
	if session.Template.IsCollage {
		composite, err := s.RenderCollage(&session.Collage)
		if err != nil {
			return "", nil, err
		}
		return fmt.Sprintf("collage-%s.jpg", session.ID), composite, nil
	}

	if session.Photo == nil {
		return "", nil, customize.NewValidationError("sube una foto antes de ordenar")
	}
	return session.Photo.FileName, session.Photo.Data, nil
}
