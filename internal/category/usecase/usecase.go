package usecase

import (
	"context"
	"strconv"

	"github.com/fekuna/omnipos-catalog-service/internal/category"
	"github.com/fekuna/omnipos-catalog-service/internal/category/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/logger"
	"go.uber.org/zap"
)

// seedCategories is the fixed demo set inserted by SeedCategories.
var seedCategories = []dto.CreateCategoryInput{
	{Name: "Dining", ImageLink: "https://i.postimg.cc/XNcsnjHC/jantar.png"},
	{Name: "Living", ImageLink: "https://i.postimg.cc/Xq3x9mJq/sala.png"},
	{Name: "Bedroom", ImageLink: "https://i.postimg.cc/MTJY8N15/quarto.png"},
}

type categoryUseCase struct {
	repo      category.Repository
	publisher event.Publisher
	clock     clock.Clock
	logger    logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, publisher event.Publisher, clk clock.Clock, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:      repo,
		publisher: publisher,
		clock:     clk,
		logger:    log,
	}
}

func (uc *categoryUseCase) newCategory(input *dto.CreateCategoryInput) *model.Category {
	now := uc.clock.Now()
	return &model.Category{
		BaseModel: model.BaseModel{CreatedDate: now, UpdatedDate: now},
		Name:      input.Name,
		ImageLink: input.ImageLink,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, input *dto.CreateCategoryInput) (*model.Category, error) {
	cat := uc.newCategory(input)
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	uc.publish(ctx, cat)
	return cat, nil
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, id int64) (*model.Category, error) {
	cat, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, apperror.NotFound("category not found")
	}
	return cat, nil
}

func (uc *categoryUseCase) ListCategories(ctx context.Context) ([]model.Category, error) {
	return uc.repo.FindAll(ctx)
}

func (uc *categoryUseCase) SeedCategories(ctx context.Context) ([]model.Category, error) {
	count, err := uc.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		uc.logger.Warn("categories already seeded", zap.Int("count", count))
		return []model.Category{}, nil
	}

	batch := make([]*model.Category, len(seedCategories))
	for i := range seedCategories {
		batch[i] = uc.newCategory(&seedCategories[i])
	}

	// The repository re-checks emptiness inside its transaction, holding a table lock.
	inserted, err := uc.repo.CreateBatchIfEmpty(ctx, batch)
	if err != nil {
		uc.logger.Error("failed to seed categories", zap.Error(err))
		return nil, err
	}
	if !inserted {
		uc.logger.Warn("categories seeded concurrently, skipping")
		return []model.Category{}, nil
	}

	out := make([]model.Category, len(batch))
	for i, c := range batch {
		out[i] = *c
	}
	uc.publish(ctx, batch...)
	uc.logger.Info("seeded categories", zap.Int("count", len(out)))
	return out, nil
}

func (uc *categoryUseCase) publish(ctx context.Context, cats ...*model.Category) {
	events := make([]event.Event, len(cats))
	for i, c := range cats {
		events[i] = event.New(event.TypeCategoryCreated, strconv.FormatInt(c.ID, 10), c, uc.clock.Now())
	}
	if err := uc.publisher.Publish(ctx, events...); err != nil {
		uc.logger.Error("failed to publish category events", zap.Int("count", len(events)), zap.Error(err))
	}
}
