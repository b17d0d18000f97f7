package model

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name             string              `db:"name" json:"name"`
	SKU              string              `db:"sku" json:"sku"`
	CategoryID       int64               `db:"category_id" json:"category_id"`
	Description      string              `db:"description" json:"description"`
	LargeDescription string              `db:"large_description" json:"large_description"`
	Price            decimal.Decimal     `db:"price" json:"price"`
	DiscountPrice    decimal.NullDecimal `db:"discount_price" json:"discount_price"`
	DiscountPercent  *int                `db:"discount_percent" json:"discount_percent"`
	IsNew            bool                `db:"is_new" json:"is_new"`
	ImageLink        string              `db:"image_link" json:"image_link"`
	OtherImagesLink  ImageList           `db:"other_images_link" json:"other_images_link"`
	Category         *Category           `db:"-" json:"category,omitempty"` // Joined data
}

// EffectivePrice is the discount price when present, otherwise the list price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice.Valid {
		return p.DiscountPrice.Decimal
	}
	return p.Price
}

// HasDiscount reports whether the product carries a positive discount percent.
func (p *Product) HasDiscount() bool {
	return p.DiscountPercent != nil && *p.DiscountPercent > 0
}
