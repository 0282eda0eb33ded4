package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"estampa-studio/customize"
	"estampa-studio/models"
	"estampa-studio/utils"
)

// ProofService renders a print-proof PDF of a customization session for the
// print shop: the current preview, the selected options, and the price
// breakdown.
type ProofService struct {
	previews *PreviewService
}

// NewProofService creates a new ProofService
func NewProofService(previews *PreviewService) *ProofService {
	return &ProofService{previews: previews}
}

// detectChromePath detects the path to Chrome/Chromium executable.
// Checks CHROME_PATH env var first, then common installation paths.
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// proofData is the data passed to the proof HTML template
type proofData struct {
	SessionID    string
	ProductName  string
	SKU          string
	Template     string
	Quantity     int
	CustomText   string
	PreviewURI   template.URL
	Lines        []models.PriceLine
	BasePrice    string
	UnitPrice    string
	Total        string
	GeneratedAt  string
	QualityNote  string
}

// RenderProofHTML builds the proof sheet HTML for a session. The caller must
// hold the session lock.
func (s *ProofService) RenderProofHTML(session *customize.Session) (string, error) {
	preview, err := s.previews.RenderSession(session)
	if err != nil {
		return "", err
	}

	breakdown := session.Breakdown()
	intentSKU := utils.ComposeSKU(session.Product.Category, session.Template.ID,
		session.SelectedID(customize.DimensionSize), session.SelectedID(customize.DimensionFrame))

	qualityNote := ""
	if session.Photo != nil {
		qualityNote = string(session.Photo.Quality)
	}

	data := proofData{
		SessionID:   session.ID,
		ProductName: session.Product.Name,
		SKU:         intentSKU,
		Template:    session.Template.Label,
		Quantity:    session.Quantity,
		CustomText:  session.CustomText,
		PreviewURI:  template.URL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(preview)),
		Lines:       breakdown.Lines,
		BasePrice:   utils.FormatCOP(breakdown.BasePrice),
		UnitPrice:   utils.FormatCOP(breakdown.UnitPrice),
		Total:       breakdown.TotalFormatted,
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
		QualityNote: qualityNote,
	}

	templatePath := filepath.Join("templates", "proof.html")
	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", fmt.Errorf("failed to load proof template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render proof template: %w", err)
	}
	return buf.String(), nil
}

// GenerateProofPDF renders the proof sheet to PDF with headless Chrome
func (s *ProofService) GenerateProofPDF(ctx context.Context, session *customize.Session) ([]byte, error) {
	html, err := s.RenderProofHTML(session)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	chromePath := detectChromePath()
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdfBuf []byte
	err = chromedp.Run(chromedpCtx,
		chromedp.EmulateViewport(794, 1123), // A4 at 96 DPI
		chromedp.Navigate(dataURL),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(8.27).   // 210mm in inches
				WithPaperHeight(11.69). // 297mm in inches
				WithMarginTop(0.4).
				WithMarginBottom(0.4).
				WithMarginLeft(0.4).
				WithMarginRight(0.4).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to generate proof PDF: %w", err)
	}

	log.Printf("✅ GenerateProofPDF: rendered proof for session %s (%d bytes)", session.ID, len(pdfBuf))
	return pdfBuf, nil
}
