package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fekuna/omnipos-catalog-service/internal/event"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/clock"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/fekuna/omnipos-catalog-service/internal/product/seed"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memProducts struct {
	rows    []model.Product
	failOn  map[int]error // insert attempt index -> error
	calls   int
	filters *dto.ProductFilters
}

func (m *memProducts) Create(_ context.Context, p *model.Product) error {
	defer func() { m.calls++ }()
	if err, ok := m.failOn[m.calls]; ok {
		return err
	}
	p.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, *p)
	return nil
}

func (m *memProducts) FindByID(_ context.Context, id int64) (*model.Product, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			p := m.rows[i]
			p.Category = &model.Category{BaseModel: model.BaseModel{ID: p.CategoryID}}
			return &p, nil
		}
	}
	return nil, nil
}

func (m *memProducts) FindAll(_ context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	m.filters = f
	limit, _ := f.Window()
	if limit > len(m.rows) {
		limit = len(m.rows)
	}
	return m.rows[:limit], len(m.rows), nil
}

type memCategories struct {
	rows []model.Category
	err  error
}

func (m *memCategories) Create(context.Context, *model.Category) error { return nil }

func (m *memCategories) FindByID(_ context.Context, id int64) (*model.Category, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.rows {
		if m.rows[i].ID == id {
			return &m.rows[i], nil
		}
	}
	return nil, nil
}

func (m *memCategories) FindAll(context.Context) ([]model.Category, error) { return m.rows, m.err }
func (m *memCategories) Count(context.Context) (int, error)                { return len(m.rows), m.err }
func (m *memCategories) CreateBatchIfEmpty(context.Context, []*model.Category) (bool, error) {
	return false, nil
}

type recordingPublisher struct {
	events []event.Event
}

func (p *recordingPublisher) Publish(_ context.Context, events ...event.Event) error {
	p.events = append(p.events, events...)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

var fixedNow = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func threeCategories() *memCategories {
	return &memCategories{rows: []model.Category{
		{BaseModel: model.BaseModel{ID: 1}, Name: "Dining"},
		{BaseModel: model.BaseModel{ID: 2}, Name: "Living"},
		{BaseModel: model.BaseModel{ID: 3}, Name: "Bedroom"},
	}}
}

func newUseCase(products *memProducts, cats *memCategories, pub *recordingPublisher) *productUseCase {
	return NewProductUseCase(products, cats, seed.NewGenerator(7), pub, clock.NewFake(fixedNow), logger.NewNop()).(*productUseCase)
}

func TestCreateProduct(t *testing.T) {
	products := &memProducts{}
	pub := &recordingPublisher{}
	uc := newUseCase(products, threeCategories(), pub)

	p, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{
		Name:       "Armchair",
		SKU:        "AC-1",
		CategoryID: 2,
		Price:      decimal.NewFromInt(450),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, fixedNow, p.CreatedDate)
	require.Len(t, pub.events, 1)
	assert.Equal(t, event.TypeProductCreated, pub.events[0].EventType)
}

func TestCreateProduct_UnknownCategoryIsValidationError(t *testing.T) {
	products := &memProducts{}
	uc := newUseCase(products, threeCategories(), &recordingPublisher{})

	_, err := uc.CreateProduct(context.Background(), &dto.CreateProductInput{CategoryID: 99})
	assert.True(t, apperror.IsValidation(err))
	assert.Empty(t, products.rows)
}

func TestGetProduct(t *testing.T) {
	products := &memProducts{}
	uc := newUseCase(products, threeCategories(), &recordingPublisher{})
	ctx := context.Background()

	for _, id := range []int64{1, 0, -1} {
		_, err := uc.GetProduct(ctx, id)
		assert.True(t, apperror.IsNotFound(err), "id %d", id)
	}

	created, err := uc.CreateProduct(ctx, &dto.CreateProductInput{CategoryID: 3, Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	got, err := uc.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, int64(3), got.Category.ID)
}

func TestListProducts_PassesFiltersAndTotal(t *testing.T) {
	products := &memProducts{rows: make([]model.Product, 20)}
	uc := newUseCase(products, threeCategories(), &recordingPublisher{})

	filters := &dto.ProductFilters{Categories: []int64{1}, HasDiscount: true, OrderBy: dto.OrderByPriceDesc}
	page, err := uc.ListProducts(context.Background(), filters)
	require.NoError(t, err)
	assert.Same(t, filters, products.filters)
	assert.Len(t, page.Items, dto.DefaultLimit)
	assert.Equal(t, 20, page.Meta.Total)
}

func TestSeedProducts_NoCategories(t *testing.T) {
	products := &memProducts{}
	pub := &recordingPublisher{}
	uc := newUseCase(products, &memCategories{}, pub)

	out, err := uc.SeedProducts(context.Background(), 5)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Zero(t, products.calls)
	assert.Empty(t, pub.events)
}

func TestSeedProducts(t *testing.T) {
	products := &memProducts{}
	cats := threeCategories()
	pub := &recordingPublisher{}
	uc := newUseCase(products, cats, pub)

	out, err := uc.SeedProducts(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, out, 5)
	assert.Len(t, products.rows, 5)
	assert.Len(t, pub.events, 5)

	for _, p := range out {
		assert.NotZero(t, p.ID)
		assert.Contains(t, []int64{1, 2, 3}, p.CategoryID)
		assert.True(t, p.Price.GreaterThanOrEqual(decimal.NewFromInt(10)))
		assert.True(t, p.Price.LessThanOrEqual(decimal.NewFromInt(10000)))
		if p.DiscountPercent != nil && p.DiscountPrice.Valid {
			assert.True(t, p.DiscountPrice.Decimal.Equal(seed.DiscountedPrice(p.Price, *p.DiscountPercent)))
		}
	}
}

func TestSeedProducts_PartialSuccess(t *testing.T) {
	boom := apperror.Storage("insert product", errors.New("deadlock"))
	products := &memProducts{failOn: map[int]error{1: boom, 3: boom}}
	uc := newUseCase(products, threeCategories(), &recordingPublisher{})

	out, err := uc.SeedProducts(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Equal(t, 5, products.calls)
}

func TestSeedProducts_AllFailed(t *testing.T) {
	boom := apperror.Storage("insert product", errors.New("read-only"))
	products := &memProducts{failOn: map[int]error{0: boom, 1: boom}}
	uc := newUseCase(products, threeCategories(), &recordingPublisher{})

	out, err := uc.SeedProducts(context.Background(), 2)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, out)
}

func TestSeedProducts_InvalidQuantity(t *testing.T) {
	products := &memProducts{}
	uc := newUseCase(products, threeCategories(), &recordingPublisher{})

	for _, q := range []int{0, -1, dto.MaxSeedQuantity + 1, 1 << 50} {
		out, err := uc.SeedProducts(context.Background(), q)
		assert.True(t, apperror.IsValidation(err), "quantity %d", q)
		assert.Nil(t, out)
	}
	assert.Zero(t, products.calls)
}
