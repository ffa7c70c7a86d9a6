package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"devurai/internal/models"
	"devurai/internal/repositories"
	"devurai/internal/services"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProductService_GetAllProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: uuid.NewString(), Name: "Product A"},
		{ID: uuid.NewString(), Name: "Product B"},
	}
	mockRepo.On("GetAll", ctx).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	id := uuid.NewString()
	expectedProduct := &models.Product{ID: id, Name: "Product A"}
	mockRepo.On("GetByID", ctx, id).Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	missing := uuid.NewString()
	mockRepo.On("GetByID", ctx, missing).Return(nil, fmt.Errorf("failed to get product by ID %s: %w", missing, repositories.ErrNotFound)).Once()
	product, err = service.GetProductByID(ctx, missing)
	assert.ErrorIs(t, err, services.ErrNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_MalformedIDSkipsStorage(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	_, err := service.GetProductByID(ctx, "123abc")
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = service.DeleteProduct(ctx, "123abc")
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = service.UpdateProduct(ctx, "123abc", models.ProductPatch{})
	assert.ErrorIs(t, err, services.ErrNotFound)

	mockRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "New Product" && p.Price == nil && p.Amount == nil
	})).Return(nil).Once()
	publisher.On("Publish", services.EventProductCreated, mock.Anything).Return(nil).Once()

	product, err := service.CreateProduct(ctx, "  New Product ")
	require.NoError(t, err)
	assert.Equal(t, "New Product", product.Name)

	_, err = service.CreateProduct(ctx, "   ")
	assert.ErrorIs(t, err, services.ErrValidation)

	mockRepo.On("Create", ctx, mock.Anything).Return(fmt.Errorf("failed to create product: %w", repositories.ErrDuplicate)).Once()
	_, err = service.CreateProduct(ctx, "New Product")
	assert.ErrorIs(t, err, services.ErrValidation)

	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("database error")).Once()
	_, err = service.CreateProduct(ctx, "Other")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrValidation)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	id := uuid.NewString()
	price := 42.0
	patch := models.ProductPatch{Price: models.Optional[float64]{Value: price, Set: true}}

	mockRepo.On("Update", ctx, id, mock.MatchedBy(func(fields map[string]interface{}) bool {
		p, ok := fields["price"].(*float64)
		return len(fields) == 1 && ok && *p == price
	})).Return(&models.Product{ID: id, Name: "Lamp", Price: &price}, nil).Once()
	publisher.On("Publish", services.EventProductUpdated, mock.Anything).Return(errors.New("broker down")).Once()

	// A failed publish does not fail the update.
	product, err := service.UpdateProduct(ctx, id, patch)
	require.NoError(t, err)
	assert.Equal(t, price, *product.Price)

	_, err = service.UpdateProduct(ctx, id, models.ProductPatch{Name: models.Optional[string]{Set: true, Null: true}})
	assert.ErrorIs(t, err, services.ErrValidation)

	missing := uuid.NewString()
	mockRepo.On("Update", ctx, missing, mock.Anything).Return(nil, fmt.Errorf("failed to update product %s: %w", missing, repositories.ErrNotFound)).Once()
	_, err = service.UpdateProduct(ctx, missing, patch)
	assert.ErrorIs(t, err, services.ErrNotFound)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	id := uuid.NewString()
	mockRepo.On("Delete", ctx, id).Return(&models.Product{ID: id, Name: "Lamp"}, nil).Once()
	publisher.On("Publish", services.EventProductDeleted, mock.Anything).Return(nil).Once()

	product, err := service.DeleteProduct(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, product.ID)

	missing := uuid.NewString()
	mockRepo.On("Delete", ctx, missing).Return(nil, fmt.Errorf("failed to delete product %s: %w", missing, repositories.ErrNotFound)).Once()
	_, err = service.DeleteProduct(ctx, missing)
	assert.ErrorIs(t, err, services.ErrNotFound)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}
