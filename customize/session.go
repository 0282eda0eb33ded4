package customize

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"estampa-studio/models"
	"estampa-studio/utils"
)

// Flow identifies which upload limits and submit preconditions apply
const (
	FlowPhoto = "photo" // default, 10 MB upload limit
	FlowLogo  = "logo"  // stricter 5 MB collaborator limit
	FlowText  = "text"  // requires non-empty custom text before submit
)

// Session is the single explicit state struct behind one customization page
// instance. All mutation goes through its reducer methods so the step-guard
// logic stays independently testable. Not shared across sessions; the mutex
// only serializes the HTTP handlers of this one session.
type Session struct {
	mu sync.Mutex

	ID        string
	Product   *models.Product
	Flow      string
	CreatedAt time.Time
	touchedAt time.Time // guarded by mu; read via Touched

	Step       Step
	Template   models.DesignTemplate
	Dimensions []models.OptionDimension
	Quantity   int
	CustomText string

	Photo   *models.UploadedImage
	Collage Collage
	Canvas  *CanvasState

	surfaces SurfaceFactory

	// ingestSeq issues monotonically increasing tokens; ingestLatest tracks
	// the newest token per upload target, so only uploads racing for the
	// same target discard each other
	ingestSeq    uint64
	ingestLatest map[ingestTarget]uint64
}

// ingestTarget identifies what an upload replaces: the single photo or one
// collage slot. Slots are independent of each other and of the single photo,
// so races are resolved per target.
type ingestTarget struct {
	collage bool
	slot    int
}

func ingestTargetFor(forCollage bool, slot int) ingestTarget {
	if !forCollage {
		slot = 0
	}
	return ingestTarget{collage: forCollage, slot: slot}
}

// NewSession creates a session for a product with the default template
// pre-selected and every dimension holding its default choice.
func NewSession(id string, product *models.Product, flow string, surfaces SurfaceFactory) *Session {
	if flow == "" {
		flow = FlowPhoto
	}
	now := time.Now()
	return &Session{
		ID:           id,
		Product:      product,
		Flow:         flow,
		CreatedAt:    now,
		touchedAt:    now,
		Step:         StepDesign,
		Template:     Templates[0],
		Dimensions:   BuildDimensions(product),
		Quantity:     1,
		surfaces:     surfaces,
		ingestLatest: make(map[ingestTarget]uint64),
	}
}

// Lock serializes access to the session for one handler invocation
func (s *Session) Lock() {
	s.mu.Lock()
	s.touchedAt = time.Now()
}

// Unlock releases the session
func (s *Session) Unlock() {
	s.mu.Unlock()
}

// Touched reports the last time a handler held the session. Safe to call
// without holding the lock; the expiry sweep reads it concurrently.
func (s *Session) Touched() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}

// Select updates one dimension's selection and rebuilds the canvas when the
// size changed, re-running the cover-fit computation at the new dimensions.
func (s *Session) Select(dimensionID, choiceID string) error {
	if err := SelectChoice(s.Dimensions, dimensionID, choiceID); err != nil {
		return err
	}
	if dimensionID == DimensionSize {
		s.rerateImages()
		s.rebuildCanvas()
	}
	return nil
}

// rerateImages re-derives the quality rating of every uploaded image against
// the newly selected print size: a photo that rates excellent at 20x30 may
// only rate fair at 60x90
func (s *Session) rerateImages() {
	target := s.PrintSize()
	if s.Photo != nil {
		s.Photo.Quality = models.RateQuality(models.EstimateDPI(s.Photo.PixelWidth, s.Photo.PixelHeight, target))
	}
	for _, slot := range s.Collage.Slots {
		if slot != nil {
			slot.Quality = models.RateQuality(models.EstimateDPI(slot.PixelWidth, slot.PixelHeight, target))
		}
	}
}

// SelectTemplate changes the design template. The current canvas is disposed
// and rebuilt against the new aspect ratio; the uploaded photo source is
// retained and re-rendered. Crossing between collage and single-image
// templates leaves each structure's images in place, but any in-flight ingest
// for the other family is discarded when it lands (see CompleteIngest).
func (s *Session) SelectTemplate(templateID string) error {
	template := TemplateByID(templateID)
	if template == nil {
		return NewValidationError(fmt.Sprintf("unknown design template %q", templateID))
	}
	s.Template = *template
	s.rebuildCanvas()
	return nil
}

// SetQuantity updates the quantity; the price projection picks it up on the
// next read
func (s *Session) SetQuantity(quantity int) error {
	if quantity < 1 {
		return NewValidationError("quantity must be at least 1")
	}
	s.Quantity = quantity
	return nil
}

// SetText updates the custom text
func (s *Session) SetText(text string) {
	s.CustomText = strings.TrimSpace(text)
}

// BeginIngest issues a request token for an ingest operation targeting either
// one collage slot or the single photo (slot is ignored then). Tokens are
// monotonically increasing per target; only the latest for a target may apply
// its result, and targets never discard each other.
func (s *Session) BeginIngest(forCollage bool, slot int) uint64 {
	s.ingestSeq++
	s.ingestLatest[ingestTargetFor(forCollage, slot)] = s.ingestSeq
	return s.ingestSeq
}

// CompleteIngest applies a finished ingest. Results carrying a stale token
// for their target are discarded silently (last-write-wins), as are results
// whose target family no longer matches the current template (single vs
// collage), because the target data structure differs.
func (s *Session) CompleteIngest(token uint64, forCollage bool, slot int, img *models.UploadedImage) error {
	if token != s.ingestLatest[ingestTargetFor(forCollage, slot)] {
		log.Printf("⏭️  CompleteIngest: discarding stale ingest result (token=%d)", token)
		return nil
	}
	if s.Template.IsCollage != forCollage {
		log.Printf("⏭️  CompleteIngest: discarding result, template family changed while decode was in flight")
		return nil
	}

	// Decode ran against the print size captured at upload start; re-rate
	// against the size selected now
	img.Quality = models.RateQuality(models.EstimateDPI(img.PixelWidth, img.PixelHeight, s.PrintSize()))

	if forCollage {
		return s.Collage.SetSlot(slot, img)
	}

	// Replaced wholesale; no history kept
	s.Photo = img
	s.rebuildCanvas()
	return nil
}

// ClearPhoto removes the single uploaded photo and its canvas
func (s *Session) ClearPhoto() {
	s.Photo = nil
	s.disposeCanvas()
}

// rebuildCanvas disposes the current canvas and builds a fresh one from the
// retained photo at the current template's dimensions. Rebuilt rather than
// mutated in place so no stale transform state leaks.
func (s *Session) rebuildCanvas() {
	s.disposeCanvas()
	if s.Photo == nil || s.Template.IsCollage {
		return
	}
	s.Canvas = NewCanvasState(s.Photo.PixelWidth, s.Photo.PixelHeight, s.Template.AspectRatio, s.surfaces)
}

func (s *Session) disposeCanvas() {
	if s.Canvas != nil {
		s.Canvas.Dispose()
		s.Canvas = nil
	}
}

// ZoomIn zooms the canvas in by one step
func (s *Session) ZoomIn() error {
	if s.Canvas == nil {
		return NewValidationError("no photo on the canvas yet")
	}
	s.Canvas.ZoomIn()
	return nil
}

// ZoomOut zooms the canvas out by one step
func (s *Session) ZoomOut() error {
	if s.Canvas == nil {
		return NewValidationError("no photo on the canvas yet")
	}
	s.Canvas.ZoomOut()
	return nil
}

// Rotate rotates the canvas by 90 degrees
func (s *Session) Rotate() error {
	if s.Canvas == nil {
		return NewValidationError("no photo on the canvas yet")
	}
	s.Canvas.Rotate()
	return nil
}

// uploadReady is the step guard for the current template
func (s *Session) uploadReady() bool {
	if s.Template.IsCollage {
		return s.Collage.HasAtLeastOneImage()
	}
	return s.Photo != nil
}

// Continue advances the wizard one step, applying the upload guard
func (s *Session) Continue() error {
	next, err := NextStep(s.Step, s.Template.IsCollage, s.uploadReady)
	if err != nil {
		return err
	}
	s.Step = next
	return nil
}

// Back moves the wizard one step back without losing any data
func (s *Session) Back() error {
	prev, err := PrevStep(s.Step)
	if err != nil {
		return err
	}
	s.Step = prev
	return nil
}

// SelectedLabel returns the selected choice label of a dimension, or ""
func (s *Session) SelectedLabel(dimensionID string) string {
	for i := range s.Dimensions {
		if s.Dimensions[i].ID == dimensionID {
			if selected := s.Dimensions[i].Selected(); selected != nil {
				return selected.Label
			}
		}
	}
	return ""
}

// SelectedID returns the selected choice ID of a dimension, or ""
func (s *Session) SelectedID(dimensionID string) string {
	for i := range s.Dimensions {
		if s.Dimensions[i].ID == dimensionID {
			return s.Dimensions[i].SelectedID
		}
	}
	return ""
}

// PrintSize returns the physical target print size of the current selection
func (s *Session) PrintSize() models.PrintSize {
	return PrintSizeFor(s.SelectedID(DimensionSize))
}

// MaxUploadBytes returns the upload limit for the session's flow
func (s *Session) MaxUploadBytes() int64 {
	if s.Flow == FlowLogo {
		return 5 << 20
	}
	return 10 << 20
}

// Breakdown derives the current price breakdown. Pure projection of the
// selection state, recomputed on every call.
func (s *Session) Breakdown() models.PriceBreakdown {
	return BuildBreakdown(s.Product.BasePrice, s.Dimensions, s.Quantity)
}

// View builds the JSON view of the session
func (s *Session) View() models.SessionView {
	view := models.SessionView{
		ID:         s.ID,
		ProductID:  s.Product.ID,
		Flow:       s.Flow,
		Step:       string(s.Step),
		Template:   s.Template,
		Dimensions: s.Dimensions,
		Quantity:   s.Quantity,
		CustomText: s.CustomText,
		Photo:      s.Photo,
		Price:      s.Breakdown(),
	}
	if s.Template.IsCollage {
		for i, slot := range s.Collage.Slots {
			view.Slots = append(view.Slots, models.SlotView{Index: i, Image: slot})
		}
	}
	if s.Canvas != nil {
		view.Canvas = &models.CanvasView{
			Scale:           s.Canvas.Scale,
			RotationDegrees: s.Canvas.RotationDegrees,
			AspectRatio:     s.Canvas.AspectRatio,
			FrameWidth:      s.Canvas.FrameWidth,
			FrameHeight:     s.Canvas.FrameHeight,
		}
	}
	return view
}

// BuildIntent packages the final selections into the outbound order payload.
// Returns a ValidationError when the submit preconditions are not met. The
// image reference is filled in by the caller after the photo is persisted.
func (s *Session) BuildIntent(mode string) (*models.OrderIntent, error) {
	if mode != "cart" && mode != "buyNow" {
		return nil, NewValidationError(fmt.Sprintf("mode must be \"cart\" or \"buyNow\", got %q", mode))
	}
	if !s.uploadReady() {
		if s.Template.IsCollage {
			return nil, NewValidationError("agrega al menos una foto al collage antes de ordenar")
		}
		return nil, NewValidationError("sube una foto antes de ordenar")
	}
	if s.Flow == FlowText && s.CustomText == "" {
		return nil, NewValidationError("escribe el texto personalizado antes de ordenar")
	}

	breakdown := s.Breakdown()
	return &models.OrderIntent{
		ProductID:         s.Product.ID,
		ProductName:       s.Product.Name,
		Category:          s.Product.Category,
		SKU:               utils.ComposeSKU(s.Product.Category, s.Template.ID, s.SelectedID(DimensionSize), s.SelectedID(DimensionFrame)),
		Quantity:          s.Quantity,
		UnitPrice:         breakdown.UnitPrice,
		SelectedSize:      s.SelectedLabel(DimensionSize),
		SelectedFrame:     s.SelectedLabel(DimensionFrame),
		SelectedThickness: s.SelectedLabel(DimensionThickness),
		SelectedTemplate:  s.Template.ID,
		CustomText:        s.CustomText,
		Mode:              mode,
	}, nil
}
