package dto

import (
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/apperror"
)

const (
	DefaultLimit        = 16
	DefaultSeedQuantity = 200
	MaxSeedQuantity     = 10000
)

// ValidateSeedQuantity accepts 1..MaxSeedQuantity.
func ValidateSeedQuantity(quantity int) error {
	if quantity < 1 || quantity > MaxSeedQuantity {
		return apperror.Validationf("quantity must be between 1 and %d, got %d", MaxSeedQuantity, quantity)
	}
	return nil
}

// OrderBy selects price ordering of a product listing.
type OrderBy string

const (
	OrderByNone      OrderBy = ""
	OrderByPriceAsc  OrderBy = "1"
	OrderByPriceDesc OrderBy = "2"
)

func (o OrderBy) Valid() bool {
	return o == OrderByNone || o == OrderByPriceAsc || o == OrderByPriceDesc
}

// ProductFilters drives a product listing. Nil Limit/Offset mean "use the default".
// Filters compose with AND.
type ProductFilters struct {
	Limit       *int
	Offset      *int
	Categories  []int64 // Membership set; empty means no category filter
	HasDiscount bool    // Only true filters; false is "don't care"
	OrderBy     OrderBy
}

func (f *ProductFilters) Window() (limit, offset int) {
	limit, offset = DefaultLimit, 0
	if f.Limit != nil {
		limit = *f.Limit
	}
	if f.Offset != nil {
		offset = *f.Offset
	}
	return limit, offset
}

type PageMeta struct {
	Total int `json:"total"`
}

type ProductPage struct {
	Items []model.Product `json:"items"`
	Meta  PageMeta        `json:"meta"`
}
