package product

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
)

type Repository interface {
	Create(ctx context.Context, product *model.Product) error
	// FindByID returns the product with its category joined, or nil when absent.
	FindByID(ctx context.Context, id int64) (*model.Product, error)
	// FindAll returns one window of the matching set and the size of the whole set.
	FindAll(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error)
}
