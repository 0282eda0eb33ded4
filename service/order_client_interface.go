package service

import (
	"context"

	"estampa-studio/models"
)

// OrderClientInterface defines the contract with the external order
// collaborator. A submission is a single fire-and-await: no retry, no
// idempotency keys.
type OrderClientInterface interface {
	Submit(ctx context.Context, intent *models.OrderIntent) (*models.OrderServiceResponse, error)
}
