package controller

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"estampa-studio/repository"
	"estampa-studio/service"
)

// ProofController serves print-proof PDFs of customization sessions
type ProofController struct {
	sessions *repository.SessionStore
	proofs   *service.ProofService
}

// NewProofController creates a new ProofController
func NewProofController(sessions *repository.SessionStore, proofs *service.ProofService) *ProofController {
	return &ProofController{
		sessions: sessions,
		proofs:   proofs,
	}
}

// GetProof handles GET /customize/sessions/:id/proof
func (c *ProofController) GetProof(w http.ResponseWriter, r *http.Request, path string) {
	log.Printf("📥 GetProof: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := path
	if i := strings.Index(path, "/"); i >= 0 {
		id = path[:i]
	}

	session, err := c.sessions.Get(id)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	session.Lock()
	defer session.Unlock()

	pdf, err := c.proofs.GenerateProofPDF(context.Background(), session)
	if err != nil {
		log.Printf("❌ GetProof: session %s: %v", session.ID, err)
		http.Error(w, fmt.Sprintf("Failed to generate proof: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"proof-%s.pdf\"", session.ID))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}
