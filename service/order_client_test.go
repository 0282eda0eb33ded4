package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estampa-studio/customize"
	"estampa-studio/models"
)

func testIntent(mode string) *models.OrderIntent {
	return &models.OrderIntent{
		ProductID:    12,
		ProductName:  "Retrato en lienzo",
		Category:     "canvas",
		SKU:          "CV-VT-30X40-NG",
		Quantity:     1,
		UnitPrice:    199800,
		SelectedSize: "30x40 cm",
		ImageRef:     "drive-file-id",
		Mode:         mode,
	}
}

func TestSubmitCartPostsIntent(t *testing.T) {
	var gotPath string
	var gotIntent models.OrderIntent

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotIntent))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"orderRef": "ord-881"}`))
	}))
	defer server.Close()

	client := NewOrderClient(server.URL)
	resp, err := client.Submit(context.Background(), testIntent("cart"))
	require.NoError(t, err)

	assert.Equal(t, "/api/cart", gotPath)
	assert.Equal(t, "ord-881", resp.OrderRef)
	assert.Equal(t, int64(12), gotIntent.ProductID)
	assert.Equal(t, "drive-file-id", gotIntent.ImageRef)
}

func TestSubmitBuyNowUsesBuyNowPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewOrderClient(server.URL)
	_, err := client.Submit(context.Background(), testIntent("buyNow"))
	require.NoError(t, err)
	assert.Equal(t, "/api/orders/buy-now", gotPath)
}

func TestSubmitFailureSurfacesMessageVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("producto agotado"))
	}))
	defer server.Close()

	client := NewOrderClient(server.URL)
	_, err := client.Submit(context.Background(), testIntent("cart"))

	require.Error(t, err)
	assert.True(t, customize.IsSubmissionError(err))
	assert.Equal(t, "producto agotado", err.Error())
}

func TestSubmitNetworkFailureIsSubmissionError(t *testing.T) {
	client := NewOrderClient("http://127.0.0.1:1")
	_, err := client.Submit(context.Background(), testIntent("cart"))

	require.Error(t, err)
	assert.True(t, customize.IsSubmissionError(err))
}
