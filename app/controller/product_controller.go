package controller

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"

	"estampa-studio/models"
	"estampa-studio/repository"
)

// ProductController handles HTTP requests for the product catalog
type ProductController struct {
	repository repository.ProductRepositoryInterface
}

// NewProductController creates a new ProductController
func NewProductController(repo repository.ProductRepositoryInterface) *ProductController {
	return &ProductController{
		repository: repo,
	}
}

// ListProducts handles GET /products
// Example response:
// [{"id": 12, "name": "Retrato en lienzo", "category": "canvas", "basePrice": 129900, "imageUrl": "/img/12.jpg"}]
func (c *ProductController) ListProducts(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 ListProducts: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	products, err := c.repository.List(context.Background())
	if err != nil {
		log.Printf("❌ ListProducts: Error listing products: %v", err)
		http.Error(w, "Failed to list products", http.StatusInternalServerError)
		return
	}

	if products == nil {
		products = []models.ProductListItem{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(products); err != nil {
		log.Printf("❌ ListProducts: Error encoding response: %v", err)
	}
}

// GetProduct handles GET /products/:id
func (c *ProductController) GetProduct(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 GetProduct: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/products/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		log.Printf("❌ GetProduct: Invalid product id: %s", idStr)
		http.Error(w, "invalid product id parameter", http.StatusBadRequest)
		return
	}

	product, err := c.repository.GetByID(context.Background(), id)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("❌ GetProduct: Error fetching product %d: %v", id, err)
		http.Error(w, "Failed to fetch product", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(product); err != nil {
		log.Printf("❌ GetProduct: Error encoding response: %v", err)
	}
}
