package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"estampa-studio/customize"
	"estampa-studio/models"
)

// OrderClient submits order intents to the external order service over HTTP.
// Implements OrderClientInterface.
type OrderClient struct {
	baseURL string
	client  *http.Client
}

// NewOrderClient creates a new OrderClient for the given base URL
// (e.g. "http://orders.internal:8081")
func NewOrderClient(baseURL string) *OrderClient {
	return &OrderClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// Ensure OrderClient implements OrderClientInterface
var _ OrderClientInterface = (*OrderClient)(nil)

// Submit hands a fully composed order intent to the order service. One
// attempt only; a rejection or network failure comes back as a
// SubmissionError carrying the collaborator's message verbatim.
func (c *OrderClient) Submit(ctx context.Context, intent *models.OrderIntent) (*models.OrderServiceResponse, error) {
	path := "/api/cart"
	if intent.Mode == "buyNow" {
		path = "/api/orders/buy-now"
	}

	body, err := json.Marshal(intent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode order intent: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build order request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Printf("📤 Submit: sending %s intent for product %d to %s", intent.Mode, intent.ProductID, c.baseURL+path)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &customize.SubmissionError{Message: fmt.Sprintf("no se pudo contactar el servicio de pedidos: %v", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &customize.SubmissionError{Message: fmt.Sprintf("failed to read order service response: %v", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Surface the collaborator's message verbatim
		message := strings.TrimSpace(string(respBody))
		if message == "" {
			message = fmt.Sprintf("order service returned status %d", resp.StatusCode)
		}
		log.Printf("❌ Submit: order service rejected intent: %s", message)
		return nil, &customize.SubmissionError{Message: message}
	}

	var serviceResp models.OrderServiceResponse
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &serviceResp); err != nil {
			log.Printf("⚠️  Submit: could not decode order service response: %v", err)
		}
	}

	log.Printf("✅ Submit: order service accepted intent, ref=%s", serviceResp.OrderRef)
	return &serviceResp, nil
}
