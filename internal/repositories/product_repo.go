package repositories

import (
	"context"

	"devurai/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	// Update applies fields to the product and returns the stored result.
	Update(ctx context.Context, id string, fields map[string]interface{}) (*models.Product, error)
	// Delete removes the product and returns it as it was before removal.
	Delete(ctx context.Context, id string) (*models.Product, error)
}
