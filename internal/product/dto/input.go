package dto

import (
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/shopspring/decimal"
)

type CreateProductInput struct {
	Name             string
	SKU              string
	CategoryID       int64
	Description      string
	LargeDescription string
	Price            decimal.Decimal
	DiscountPrice    decimal.NullDecimal
	DiscountPercent  *int
	IsNew            bool
	ImageLink        string
	OtherImagesLink  model.ImageList
}
