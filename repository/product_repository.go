package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"estampa-studio/db"
	"estampa-studio/models"
)

// ProductRepository handles database reads for catalog products
type ProductRepository struct{}

// NewProductRepository creates a new ProductRepository
func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// Ensure ProductRepository implements ProductRepositoryInterface
var _ ProductRepositoryInterface = (*ProductRepository)(nil)

// List returns all active products
func (r *ProductRepository) List(ctx context.Context) ([]models.ProductListItem, error) {
	query := `
		SELECT p.id, p.name, p.category, p.base_price,
		       COALESCE((SELECT url FROM product_images WHERE product_id = p.id ORDER BY position ASC LIMIT 1), '') AS image_url
		FROM products p
		WHERE p.is_active = true
		ORDER BY p.id ASC
	`

	rows, err := db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []models.ProductListItem
	for rows.Next() {
		var p models.ProductListItem
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.BasePrice, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// GetByID returns one product with its sizes, frames and images. Sizes and
// frames may come back empty; the option model fills in hardcoded defaults
// in that case.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	query := `
		SELECT id, name, category, base_price, COALESCE(description, ''), is_active, created_at
		FROM products
		WHERE id = $1
	`

	var product models.Product
	err := db.DB.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Category,
		&product.BasePrice,
		&product.Description,
		&product.IsActive,
		&product.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}

	if product.Sizes, err = r.variants(ctx, "product_sizes", id); err != nil {
		return nil, err
	}
	if product.Frames, err = r.variants(ctx, "product_frames", id); err != nil {
		return nil, err
	}
	if product.Images, err = r.images(ctx, id); err != nil {
		return nil, err
	}

	log.Printf("📦 GetByID: product %d (%s) loaded with %d sizes, %d frames",
		product.ID, product.Name, len(product.Sizes), len(product.Frames))
	return &product, nil
}

// variants reads the (name, price) variant rows of one variant table
func (r *ProductRepository) variants(ctx context.Context, table string, productID int64) ([]models.ProductVariant, error) {
	// table is one of the two fixed variant table names, never user input
	query := fmt.Sprintf(`SELECT name, price FROM %s WHERE product_id = $1 ORDER BY position ASC`, table)

	rows, err := db.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", table, err)
	}
	defer rows.Close()

	var variants []models.ProductVariant
	for rows.Next() {
		var v models.ProductVariant
		if err := rows.Scan(&v.Name, &v.Price); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		variants = append(variants, v)
	}

	return variants, rows.Err()
}

// images reads the product image URLs in display order
func (r *ProductRepository) images(ctx context.Context, productID int64) ([]string, error) {
	query := `SELECT url FROM product_images WHERE product_id = $1 ORDER BY position ASC`

	rows, err := db.DB.QueryContext(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product images: %w", err)
	}
	defer rows.Close()

	var images []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, fmt.Errorf("failed to scan image row: %w", err)
		}
		images = append(images, url)
	}

	return images, rows.Err()
}
