package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/response"
	"github.com/fekuna/omnipos-catalog-service/internal/product"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const maxOtherImagesLength = 1000

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

// Limit and Offset stay strings so that an empty value (?limit=) means "absent".
type listProductsQuery struct {
	Limit       string `form:"limit"`
	Offset      string `form:"offset"`
	Categories  string `form:"categories"`
	HasDiscount bool   `form:"hasDiscount"`
	OrderBy     string `form:"orderBy" binding:"omitempty,oneof=1 2"`
}

type categoryRef struct {
	ID int64 `json:"id"`
}

// createProductRequest accepts the category either as category_id or as a nested
// {"category": {"id": ...}} object. Length limits mirror the products table; like
// its NOT NULL columns, empty strings are accepted.
type createProductRequest struct {
	Name             string              `json:"name" binding:"max=50"`
	SKU              string              `json:"sku" binding:"max=10"`
	CategoryID       int64               `json:"category_id"`
	Category         *categoryRef        `json:"category"`
	Description      string              `json:"description" binding:"max=250"`
	LargeDescription string              `json:"large_description" binding:"max=500"`
	Price            *decimal.Decimal    `json:"price" binding:"required"`
	DiscountPrice    decimal.NullDecimal `json:"discount_price"`
	DiscountPercent  *int                `json:"discount_percent"`
	IsNew            bool                `json:"is_new"`
	ImageLink        string              `json:"image_link" binding:"max=250"`
	OtherImagesLink  model.ImageList     `json:"other_images_link"`
}

type seedProductsRequest struct {
	Quantity *int `json:"quantity"`
}

func (h *ProductHandler) Register(r gin.IRouter) {
	g := r.Group("/products")
	g.GET("", h.ListProducts)
	g.POST("", h.CreateProduct)
	g.POST("/seed", h.SeedProducts)
	g.GET("/:id", h.GetProduct)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	var q listProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, h.logger, response.BindError(err))
		return
	}

	filters, err := q.toFilters()
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	page, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (q *listProductsQuery) toFilters() (*dto.ProductFilters, error) {
	limit, err := parseOptionalInt("limit", q.Limit)
	if err != nil {
		return nil, err
	}
	if limit != nil && *limit < 1 {
		return nil, apperror.Validationf("limit must be at least 1, got %d", *limit)
	}
	offset, err := parseOptionalInt("offset", q.Offset)
	if err != nil {
		return nil, err
	}
	if offset != nil && *offset < 0 {
		return nil, apperror.Validationf("offset must not be negative, got %d", *offset)
	}

	categories, err := parseIDs(q.Categories)
	if err != nil {
		return nil, err
	}

	return &dto.ProductFilters{
		Limit:       limit,
		Offset:      offset,
		Categories:  categories,
		HasDiscount: q.HasDiscount,
		OrderBy:     dto.OrderBy(q.OrderBy),
	}, nil
}

func parseOptionalInt(name, raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.Validationf("%s must be an integer, got %q", name, raw)
	}
	return &n, nil
}

// parseIDs reads a comma-separated id list. Blank entries are skipped.
func parseIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, apperror.Validationf("invalid category id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, h.logger, apperror.Validationf("invalid product id %q", c.Param("id")))
		return
	}

	p, err := h.uc.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, h.logger, response.BindError(err))
		return
	}

	input, err := req.toInput()
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), input)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (r *createProductRequest) toInput() (*dto.CreateProductInput, error) {
	categoryID := r.CategoryID
	if categoryID == 0 && r.Category != nil {
		categoryID = r.Category.ID
	}
	if categoryID <= 0 {
		return nil, apperror.Validationf("category is required")
	}
	if n := utf8.RuneCountInString(r.OtherImagesLink.String()); n > maxOtherImagesLength {
		return nil, apperror.Validationf("other_images_link must be at most %d characters, got %d", maxOtherImagesLength, n)
	}

	return &dto.CreateProductInput{
		Name:             r.Name,
		SKU:              r.SKU,
		CategoryID:       categoryID,
		Description:      r.Description,
		LargeDescription: r.LargeDescription,
		Price:            *r.Price,
		DiscountPrice:    r.DiscountPrice,
		DiscountPercent:  r.DiscountPercent,
		IsNew:            r.IsNew,
		ImageLink:        r.ImageLink,
		OtherImagesLink:  r.OtherImagesLink,
	}, nil
}

func (h *ProductHandler) SeedProducts(c *gin.Context) {
	var req seedProductsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, h.logger, response.BindError(err))
		return
	}

	quantity := dto.DefaultSeedQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if err := dto.ValidateSeedQuantity(quantity); err != nil {
		response.Error(c, h.logger, err)
		return
	}

	products, err := h.uc.SeedProducts(c.Request.Context(), quantity)
	if err != nil {
		response.Error(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, products)
}
