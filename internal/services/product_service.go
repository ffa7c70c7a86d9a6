package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"devurai/internal/models"
	"devurai/internal/repositories"

	"github.com/google/uuid"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	publisher EventPublisher // optional
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(repo repositories.ProductRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		repo:      repo,
		publisher: publisher,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.GetAll(ctx)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	if !ValidID(id) {
		return nil, ErrNotFound
	}
	product, err := s.repo.GetByID(ctx, id)
	return product, notFound(err)
}

// CreateProduct creates a product with only a name; price and amount start
// unset.
func (s *ProductService) CreateProduct(ctx context.Context, name string) (*models.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: %v", ErrValidation, models.ErrNameRequired)
	}

	product := &models.Product{Name: name}
	if err := s.repo.Create(ctx, product); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: product '%s' already exists", ErrValidation, name)
		}
		return nil, err
	}
	s.publish(EventProductCreated, product)
	return product, nil
}

// UpdateProduct applies patch to the product with the given ID.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if !ValidID(id) {
		return nil, ErrNotFound
	}
	fields, err := patch.Fields()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	product, err := s.repo.Update(ctx, id, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, fmt.Errorf("%w: product name already exists", ErrValidation)
		}
		return nil, notFound(err)
	}
	s.publish(EventProductUpdated, product)
	return product, nil
}

// DeleteProduct deletes a product by its ID and returns it.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) (*models.Product, error) {
	if !ValidID(id) {
		return nil, ErrNotFound
	}
	product, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	s.publish(EventProductDeleted, product)
	return product, nil
}

func (s *ProductService) publish(routingKey string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	body, err := json.Marshal(product)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.publisher.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event for product %s: %v", routingKey, product.ID, err)
	}
}

// ValidID reports whether id is a well-formed product identifier.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
