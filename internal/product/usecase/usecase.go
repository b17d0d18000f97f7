package usecase

import (
	"context"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/seed"
	"go.uber.org/zap"
)

type productUseCase struct {
	repo      product.Repository
	catRepo   category.Repository
	generator *seed.Generator
	publisher event.Publisher
	clock     clock.Clock
	logger    logger.ZapLogger
}

func NewProductUseCase(
	repo product.Repository,
	catRepo category.Repository,
	generator *seed.Generator,
	publisher event.Publisher,
	clk clock.Clock,
	log logger.ZapLogger,
) product.UseCase {
	return &productUseCase{
		repo:      repo,
		catRepo:   catRepo,
		generator: generator,
		publisher: publisher,
		clock:     clk,
		logger:    log,
	}
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	cat, err := uc.catRepo.FindByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.Validationf("category %d does not exist", input.CategoryID)
	}

	p, err := uc.insert(ctx, input)
	if err != nil {
		return nil, err
	}

	uc.publish(ctx, p)
	return p, nil
}

func (uc *productUseCase) insert(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	now := uc.clock.Now()
	p := &model.Product{
		BaseModel:        model.BaseModel{CreatedDate: now, UpdatedDate: now},
		Name:             input.Name,
		SKU:              input.SKU,
		CategoryID:       input.CategoryID,
		Description:      input.Description,
		LargeDescription: input.LargeDescription,
		Price:            input.Price,
		DiscountPrice:    input.DiscountPrice,
		DiscountPercent:  input.DiscountPercent,
		IsNew:            input.IsNew,
		ImageLink:        input.ImageLink,
		OtherImagesLink:  input.OtherImagesLink,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *productUseCase) GetProduct(ctx context.Context, id int64) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperror.NotFound("product not found")
	}
	return p, nil
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) (*dto.ProductPage, error) {
	if !filters.OrderBy.Valid() {
		uc.logger.Warn("ignoring unknown product order", zap.String("order_by", string(filters.OrderBy)))
	}

	items, total, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, err
	}
	return &dto.ProductPage{Items: items, Meta: dto.PageMeta{Total: total}}, nil
}

// SeedProducts inserts quantity synthetic products. Inserts are independent: the
// products that made it are returned even when some failed.
func (uc *productUseCase) SeedProducts(ctx context.Context, quantity int) ([]model.Product, error) {
	if err := dto.ValidateSeedQuantity(quantity); err != nil {
		return nil, err
	}

	categories, err := uc.catRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(categories) == 0 {
		uc.logger.Warn("no categories found, seed categories first")
		return []model.Product{}, nil
	}

	var created []*model.Product
	var firstErr error
	failed := 0
	for i := 0; i < quantity; i++ {
		p, err := uc.insert(ctx, uc.generator.Product(categories))
		if err != nil {
			failed++
			if firstErr == nil {
				firstErr = err
			}
			uc.logger.Error("failed to insert seed product", zap.Int("index", i), zap.Error(err))
			if ctx.Err() != nil {
				break
			}
			continue
		}
		created = append(created, p)
	}

	if len(created) == 0 && firstErr != nil {
		return nil, firstErr
	}

	out := make([]model.Product, len(created))
	for i, p := range created {
		out[i] = *p
	}
	uc.publish(ctx, created...)
	uc.logger.Info("seeded products", zap.Int("created", len(out)), zap.Int("failed", failed))
	return out, nil
}

func (uc *productUseCase) publish(ctx context.Context, products ...*model.Product) {
	if len(products) == 0 {
		return
	}
	events := make([]event.Event, len(products))
	for i, p := range products {
		events[i] = event.New(event.TypeProductCreated, strconv.FormatInt(p.ID, 10), p, uc.clock.Now())
	}
	if err := uc.publisher.Publish(ctx, events...); err != nil {
		uc.logger.Error("failed to publish product events", zap.Int("count", len(events)), zap.Error(err))
	}
}
