package repository

import (
	"context"

	"estampa-studio/models"
)

// ProductRepositoryInterface defines the contract for catalog product reads
type ProductRepositoryInterface interface {
	List(ctx context.Context) ([]models.ProductListItem, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
}
