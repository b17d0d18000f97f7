package category

import (
	"context"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, id int64) (*model.Category, error)
	FindAll(ctx context.Context) ([]model.Category, error)
	Count(ctx context.Context) (int, error)

	// CreateBatchIfEmpty inserts all categories in one transaction, but only when the
	// table is empty. It reports whether anything was written.
	CreateBatchIfEmpty(ctx context.Context, categories []*model.Category) (bool, error)
}
