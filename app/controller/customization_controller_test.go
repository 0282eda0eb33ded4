package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"estampa-studio/customize"
	"estampa-studio/models"
	"estampa-studio/repository"
	"estampa-studio/service"
)

// fakeProductRepository serves a fixed catalog without a database
type fakeProductRepository struct {
	products map[int64]*models.Product
}

func (f *fakeProductRepository) List(ctx context.Context) ([]models.ProductListItem, error) {
	items := []models.ProductListItem{}
	for _, p := range f.products {
		items = append(items, models.ProductListItem{ID: p.ID, Name: p.Name, Category: p.Category, BasePrice: p.BasePrice})
	}
	return items, nil
}

func (f *fakeProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	p, exists := f.products[id]
	if !exists {
		return nil, fmt.Errorf("product not found")
	}
	return p, nil
}

// fakeOrderClient records the intent it receives
type fakeOrderClient struct {
	intent *models.OrderIntent
	err    error
}

func (f *fakeOrderClient) Submit(ctx context.Context, intent *models.OrderIntent) (*models.OrderServiceResponse, error) {
	f.intent = intent
	if f.err != nil {
		return nil, f.err
	}
	return &models.OrderServiceResponse{OrderRef: "ord-42"}, nil
}

// fakePhotoStorage records the uploaded bytes
type fakePhotoStorage struct {
	fileName string
	data     []byte
}

func (f *fakePhotoStorage) UploadPhoto(ctx context.Context, fileName string, data []byte) (string, error) {
	f.fileName = fileName
	f.data = data
	return "stored-" + fileName, nil
}

func testController(orders *fakeOrderClient, photos *fakePhotoStorage) *CustomizationController {
	repo := &fakeProductRepository{products: map[int64]*models.Product{
		12: {ID: 12, Name: "Retrato en lienzo", Category: "canvas", BasePrice: 129900, IsActive: true},
	}}
	return NewCustomizationController(
		repo,
		repository.NewSessionStore(),
		service.NewIngestService(),
		service.NewPreviewService(),
		orders,
		photos,
		service.NewImagingSurface,
	)
}

func createTestSession(t *testing.T, c *CustomizationController) models.SessionView {
	t.Helper()
	body, _ := json.Marshal(models.CreateSessionRequest{ProductID: 12})
	req := httptest.NewRequest(http.MethodPost, "/customize/sessions", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	c.CreateSession(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var view models.SessionView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	return view
}

func multipartPhoto(t *testing.T, width, height int) (*bytes.Buffer, string) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, img))

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("photo", "foto.png")
	require.NoError(t, err)
	_, err = part.Write(encoded.Bytes())
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &form, writer.FormDataContentType()
}

func TestCreateSessionReturnsDefaults(t *testing.T) {
	c := testController(&fakeOrderClient{}, &fakePhotoStorage{})
	view := createTestSession(t, c)

	assert.NotEmpty(t, view.ID)
	assert.Equal(t, int64(12), view.ProductID)
	assert.Equal(t, "design", view.Step)
	assert.Equal(t, "portrait", view.Template.ID)
	assert.Equal(t, 1, view.Quantity)
	assert.NotEmpty(t, view.Dimensions)
	// Popular defaults pre-selected: 30x40 (+40000) and black frame (+29900)
	assert.Equal(t, int64(129900+40000+29900), view.Price.Total)
}

func TestCreateSessionUnknownProductIs404(t *testing.T) {
	c := testController(&fakeOrderClient{}, &fakePhotoStorage{})
	body, _ := json.Marshal(models.CreateSessionRequest{ProductID: 999})
	req := httptest.NewRequest(http.MethodPost, "/customize/sessions", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	c.CreateSession(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSelectRecomputesPrice(t *testing.T) {
	c := testController(&fakeOrderClient{}, &fakePhotoStorage{})
	view := createTestSession(t, c)

	body, _ := json.Marshal(models.SelectChoiceRequest{DimensionID: "size", ChoiceID: "60x90"})
	req := httptest.NewRequest(http.MethodPost, "/customize/sessions/"+view.ID+"/select", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	c.Select(rec, req, view.ID+"/select")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.SessionView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, int64(129900+180000+29900), updated.Price.Total)
}

func TestSelectUnknownChoiceIs400(t *testing.T) {
	c := testController(&fakeOrderClient{}, &fakePhotoStorage{})
	view := createTestSession(t, c)

	body, _ := json.Marshal(models.SelectChoiceRequest{DimensionID: "size", ChoiceID: "99x99"})
	req := httptest.NewRequest(http.MethodPost, "/customize/sessions/"+view.ID+"/select", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	c.Select(rec, req, view.ID+"/select")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadPhotoStoresImageInSession(t *testing.T) {
	c := testController(&fakeOrderClient{}, &fakePhotoStorage{})
	view := createTestSession(t, c)

	form, contentType := multipartPhoto(t, 320, 240)
	req := httptest.NewRequest(http.MethodPost, "/customize/sessions/"+view.ID+"/photo", form)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	c.UploadPhoto(rec, req, view.ID+"/photo")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var updated models.SessionView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	require.NotNil(t, updated.Photo)
	assert.Equal(t, "foto.png", updated.Photo.FileName)
	assert.Equal(t, 320, updated.Photo.PixelWidth)
	require.NotNil(t, updated.Canvas)
	assert.Greater(t, updated.Canvas.Scale, 0.0)
}

func TestUploadRejectsNonImage(t *testing.T) {
	c := testController(&fakeOrderClient{}, &fakePhotoStorage{})
	view := createTestSession(t, c)

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	part, err := writer.CreateFormFile("photo", "notes.txt")
	require.NoError(t, err)
	part.Write([]byte("plain text, not an image"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/customize/sessions/"+view.ID+"/photo", &form)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	c.UploadPhoto(rec, req, view.ID+"/photo")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContinueBlockedWithoutPhoto(t *testing.T) {
	c := testController(&fakeOrderClient{}, &fakePhotoStorage{})
	view := createTestSession(t, c)

	path := view.ID + "/continue"
	rec := httptest.NewRecorder()
	c.Continue(rec, httptest.NewRequest(http.MethodPost, "/customize/sessions/"+path, nil), path)
	require.Equal(t, http.StatusOK, rec.Code) // design -> upload

	rec = httptest.NewRecorder()
	c.Continue(rec, httptest.NewRequest(http.MethodPost, "/customize/sessions/"+path, nil), path)
	assert.Equal(t, http.StatusBadRequest, rec.Code) // upload -> preview needs a photo
}

func TestSubmitFullFlow(t *testing.T) {
	orders := &fakeOrderClient{}
	photos := &fakePhotoStorage{}
	c := testController(orders, photos)
	view := createTestSession(t, c)

	form, contentType := multipartPhoto(t, 320, 240)
	req := httptest.NewRequest(http.MethodPost, "/customize/sessions/"+view.ID+"/photo", form)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	c.UploadPhoto(rec, req, view.ID+"/photo")
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := json.Marshal(models.SubmitRequest{Mode: "cart"})
	rec = httptest.NewRecorder()
	c.Submit(rec, httptest.NewRequest(http.MethodPost, "/customize/sessions/"+view.ID+"/submit", bytes.NewReader(body)), view.ID+"/submit")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.SubmitResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ord-42", resp.OrderRef)
	assert.Equal(t, "stored-foto.png", resp.ImageRef)

	require.NotNil(t, orders.intent)
	assert.Equal(t, "cart", orders.intent.Mode)
	assert.Equal(t, "stored-foto.png", orders.intent.ImageRef)
	assert.Equal(t, "foto.png", photos.fileName)
}

func TestSubmitFailureIs502AndSessionSurvives(t *testing.T) {
	orders := &fakeOrderClient{err: &customize.SubmissionError{Message: "producto agotado"}}
	c := testController(orders, &fakePhotoStorage{})
	view := createTestSession(t, c)

	form, contentType := multipartPhoto(t, 320, 240)
	req := httptest.NewRequest(http.MethodPost, "/customize/sessions/"+view.ID+"/photo", form)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	c.UploadPhoto(rec, req, view.ID+"/photo")
	require.Equal(t, http.StatusOK, rec.Code)

	body, _ := json.Marshal(models.SubmitRequest{Mode: "cart"})
	rec = httptest.NewRecorder()
	c.Submit(rec, httptest.NewRequest(http.MethodPost, "/customize/sessions/"+view.ID+"/submit", bytes.NewReader(body)), view.ID+"/submit")
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "producto agotado")

	// The session is intact: the user can adjust nothing and just retry
	rec = httptest.NewRecorder()
	c.GetSession(rec, httptest.NewRequest(http.MethodGet, "/customize/sessions/"+view.ID, nil), view.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	var after models.SessionView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&after))
	require.NotNil(t, after.Photo)
	assert.Equal(t, "foto.png", after.Photo.FileName)
}
