package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"estampa-studio/customize"
	"estampa-studio/models"
	"estampa-studio/repository"
	"estampa-studio/service"
)

// CustomizationController handles HTTP requests for customization sessions:
// the option selections, image uploads, canvas adjustments, wizard steps and
// the final order submission.
type CustomizationController struct {
	products repository.ProductRepositoryInterface
	sessions *repository.SessionStore
	ingest   *service.IngestService
	previews *service.PreviewService
	orders   service.OrderClientInterface
	photos   service.PhotoStorageInterface
	surfaces customize.SurfaceFactory
}

// NewCustomizationController creates a new CustomizationController
func NewCustomizationController(
	products repository.ProductRepositoryInterface,
	sessions *repository.SessionStore,
	ingest *service.IngestService,
	previews *service.PreviewService,
	orders service.OrderClientInterface,
	photos service.PhotoStorageInterface,
	surfaces customize.SurfaceFactory,
) *CustomizationController {
	return &CustomizationController{
		products: products,
		sessions: sessions,
		ingest:   ingest,
		previews: previews,
		orders:   orders,
		photos:   photos,
		surfaces: surfaces,
	}
}

// writeJSON writes a JSON response with the given status
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("❌ writeJSON: Error encoding response: %v", err)
	}
}

// writeError maps the customization error taxonomy to HTTP statuses.
// ValidationErrors are the user's to fix (400), DecodeErrors are 422,
// SubmissionErrors come from the order collaborator (502); anything else is
// a 500.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case customize.IsValidationError(err):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case customize.IsDecodeError(err):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case customize.IsSubmissionError(err):
		http.Error(w, err.Error(), http.StatusBadGateway)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// session resolves the session ID at the start of the URL path remainder
func (c *CustomizationController) session(w http.ResponseWriter, path string) *customize.Session {
	id := path
	if i := strings.Index(path, "/"); i >= 0 {
		id = path[:i]
	}

	session, err := c.sessions.Get(id)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return nil
	}
	return session
}

// CreateSession handles POST /customize/sessions
// Example request: {"productId": 12, "flow": "photo"}
func (c *CustomizationController) CreateSession(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateSession: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateSession: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.ProductID <= 0 {
		http.Error(w, "productId must be greater than 0", http.StatusBadRequest)
		return
	}

	product, err := c.products.GetByID(context.Background(), req.ProductID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("❌ CreateSession: Error fetching product %d: %v", req.ProductID, err)
		http.Error(w, "Failed to fetch product", http.StatusInternalServerError)
		return
	}

	session := c.sessions.Create(product, req.Flow, c.surfaces)

	session.Lock()
	defer session.Unlock()
	writeJSON(w, http.StatusOK, session.View())
}

// GetSession handles GET /customize/sessions/:id
func (c *CustomizationController) GetSession(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()
	writeJSON(w, http.StatusOK, session.View())
}

// Select handles POST /customize/sessions/:id/select
// Example request: {"dimensionId": "size", "choiceId": "30x40"}
func (c *CustomizationController) Select(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	var req models.SelectChoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	session.Lock()
	defer session.Unlock()

	if err := session.Select(req.DimensionID, req.ChoiceID); err != nil {
		log.Printf("❌ Select: %v", err)
		writeError(w, err)
		return
	}

	log.Printf("✅ Select: session %s selected %s=%s", session.ID, req.DimensionID, req.ChoiceID)
	writeJSON(w, http.StatusOK, session.View())
}

// SelectTemplate handles POST /customize/sessions/:id/template
// Example request: {"templateId": "collage"}
func (c *CustomizationController) SelectTemplate(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	var req models.SelectTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	session.Lock()
	defer session.Unlock()

	if err := session.SelectTemplate(req.TemplateID); err != nil {
		log.Printf("❌ SelectTemplate: %v", err)
		writeError(w, err)
		return
	}

	log.Printf("✅ SelectTemplate: session %s now uses template %s", session.ID, req.TemplateID)
	writeJSON(w, http.StatusOK, session.View())
}

// SetQuantity handles POST /customize/sessions/:id/quantity
func (c *CustomizationController) SetQuantity(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	var req models.QuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	session.Lock()
	defer session.Unlock()

	if err := session.SetQuantity(req.Quantity); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.View())
}

// SetText handles POST /customize/sessions/:id/text
func (c *CustomizationController) SetText(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	var req models.TextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	session.Lock()
	defer session.Unlock()
	session.SetText(req.Text)
	writeJSON(w, http.StatusOK, session.View())
}

// readUpload reads the multipart "photo" part of an upload request
func readUpload(r *http.Request, maxBytes int64) (string, []byte, error) {
	// The form limit is above the flow limit on purpose: oversized files must
	// reach the ingest validation so the user gets the proper message
	if err := r.ParseMultipartForm(maxBytes + (1 << 20)); err != nil {
		return "", nil, customize.NewValidationError(fmt.Sprintf("invalid multipart form: %v", err))
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		return "", nil, customize.NewValidationError("missing \"photo\" form file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read upload: %w", err)
	}

	return header.Filename, data, nil
}

// UploadPhoto handles POST /customize/sessions/:id/photo (multipart "photo").
// Replaces the current photo wholesale; concurrent uploads are
// last-write-wins via the session's ingest token.
func (c *CustomizationController) UploadPhoto(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	session.Lock()
	maxBytes := session.MaxUploadBytes()
	target := session.PrintSize()
	token := session.BeginIngest(false, 0)
	session.Unlock()

	fileName, data, err := readUpload(r, maxBytes)
	if err != nil {
		writeError(w, err)
		return
	}

	// Decode runs outside the session lock so a newer upload can overtake
	img, err := c.ingest.Ingest(fileName, data, maxBytes, target)
	if err != nil {
		log.Printf("❌ UploadPhoto: %v", err)
		writeError(w, err)
		return
	}

	session.Lock()
	defer session.Unlock()

	if err := session.CompleteIngest(token, false, 0, img); err != nil {
		writeError(w, err)
		return
	}

	log.Printf("✅ UploadPhoto: session %s photo %s (%dx%d, %s)",
		session.ID, img.FileName, img.PixelWidth, img.PixelHeight, img.Quality)
	writeJSON(w, http.StatusOK, session.View())
}

// ClearPhoto handles DELETE /customize/sessions/:id/photo
func (c *CustomizationController) ClearPhoto(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()
	session.ClearPhoto()
	writeJSON(w, http.StatusOK, session.View())
}

// collageSlot extracts the slot index from ".../collage/{slot}"
func collageSlot(path string) (int, error) {
	i := strings.LastIndex(path, "/")
	if i < 0 {
		return 0, fmt.Errorf("missing slot index")
	}
	return strconv.Atoi(path[i+1:])
}

// UploadToSlot handles POST /customize/sessions/:id/collage/:slot
func (c *CustomizationController) UploadToSlot(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	slot, err := collageSlot(path)
	if err != nil {
		http.Error(w, "invalid slot index", http.StatusBadRequest)
		return
	}

	session.Lock()
	maxBytes := session.MaxUploadBytes()
	target := session.PrintSize()
	token := session.BeginIngest(true, slot)
	session.Unlock()

	fileName, data, err := readUpload(r, maxBytes)
	if err != nil {
		writeError(w, err)
		return
	}

	img, err := c.ingest.Ingest(fileName, data, maxBytes, target)
	if err != nil {
		log.Printf("❌ UploadToSlot: %v", err)
		writeError(w, err)
		return
	}

	session.Lock()
	defer session.Unlock()

	if err := session.CompleteIngest(token, true, slot, img); err != nil {
		writeError(w, err)
		return
	}

	log.Printf("✅ UploadToSlot: session %s slot %d filled with %s", session.ID, slot, img.FileName)
	writeJSON(w, http.StatusOK, session.View())
}

// ClearSlot handles DELETE /customize/sessions/:id/collage/:slot
func (c *CustomizationController) ClearSlot(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	slot, err := collageSlot(path)
	if err != nil {
		http.Error(w, "invalid slot index", http.StatusBadRequest)
		return
	}

	session.Lock()
	defer session.Unlock()

	if err := session.Collage.ClearSlot(slot); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.View())
}

// ClearCollage handles DELETE /customize/sessions/:id/collage
func (c *CustomizationController) ClearCollage(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()
	session.Collage.ClearAll()
	writeJSON(w, http.StatusOK, session.View())
}

// Canvas handles POST /customize/sessions/:id/zoom-in, /zoom-out and /rotate
func (c *CustomizationController) Canvas(w http.ResponseWriter, r *http.Request, path string, action string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()

	var err error
	switch action {
	case "zoom-in":
		err = session.ZoomIn()
	case "zoom-out":
		err = session.ZoomOut()
	case "rotate":
		err = session.Rotate()
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.View())
}

// Continue handles POST /customize/sessions/:id/continue
func (c *CustomizationController) Continue(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()

	if err := session.Continue(); err != nil {
		log.Printf("❌ Continue: session %s blocked: %v", session.ID, err)
		writeError(w, err)
		return
	}

	log.Printf("✅ Continue: session %s advanced to %s", session.ID, session.Step)
	writeJSON(w, http.StatusOK, session.View())
}

// Back handles POST /customize/sessions/:id/back
func (c *CustomizationController) Back(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()

	if err := session.Back(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, session.View())
}

// Preview handles GET /customize/sessions/:id/preview, returning the
// rendered canvas (or collage grid) as JPEG
func (c *CustomizationController) Preview(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	session.Lock()
	defer session.Unlock()

	rendered, err := c.previews.RenderSession(session)
	if err != nil {
		log.Printf("❌ Preview: session %s: %v", session.ID, err)
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.WriteHeader(http.StatusOK)
	w.Write(rendered)
}

// Submit handles POST /customize/sessions/:id/submit
// Example request: {"mode": "cart"}
// The raw photo (or the collage composite) is persisted first, then the
// composed intent goes to the order collaborator in a single attempt. On
// failure nothing is rolled back: the session keeps every selection so the
// user can simply resubmit.
func (c *CustomizationController) Submit(w http.ResponseWriter, r *http.Request, path string) {
	session := c.session(w, path)
	if session == nil {
		return
	}

	var req models.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	session.Lock()
	defer session.Unlock()

	intent, err := session.BuildIntent(req.Mode)
	if err != nil {
		log.Printf("❌ Submit: session %s precondition failed: %v", session.ID, err)
		writeError(w, err)
		return
	}

	fileName, data, err := c.previews.SubmissionImage(session)
	if err != nil {
		writeError(w, err)
		return
	}

	ctx := context.Background()
	imageRef, err := c.photos.UploadPhoto(ctx, fileName, data)
	if err != nil {
		log.Printf("❌ Submit: session %s photo upload failed: %v", session.ID, err)
		http.Error(w, fmt.Sprintf("Failed to store photo: %v", err), http.StatusInternalServerError)
		return
	}
	intent.ImageRef = imageRef

	resp, err := c.orders.Submit(ctx, intent)
	if err != nil {
		writeError(w, err)
		return
	}

	log.Printf("✅ Submit: session %s handed %s intent to order service (ref=%s)", session.ID, req.Mode, resp.OrderRef)
	writeJSON(w, http.StatusOK, models.SubmitResponse{
		OrderRef: resp.OrderRef,
		ImageRef: imageRef,
		Message:  "pedido enviado",
	})
}
