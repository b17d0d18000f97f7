// Package seed synthesizes demo products for an existing set of categories.
package seed

import (
	"github.com/brianvoe/gofakeit/v7"
	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/shopspring/decimal"
)

const (
	MinPrice           = 10
	MaxPrice           = 10000
	MinDiscountPercent = 5
	MaxDiscountPercent = 50

	discountProbability = 0.5
	newProbability      = 0.2
	otherImagesCount    = 3
	skuLength           = 8
	largeDescWords      = 36
)

var images = []string{
	"https://i.postimg.cc/RV4bt66d/abajur.png",
	"https://i.postimg.cc/sDmH4j5r/cadeira.png",
	"https://i.postimg.cc/Qtc09hjv/mesa.png",
	"https://i.postimg.cc/Z5gcwCR1/sofa.png",
	"https://i.postimg.cc/kGcsss6c/sofa-grande.png",
	"https://i.postimg.cc/DyvBZ9HY/sofa-grande2.png",
	"https://i.postimg.cc/3Jt9DLHr/sofa-pequeno.png",
	"https://i.postimg.cc/y8WjhFVm/sofa-sala.png",
}

var miniImages = []string{
	"https://i.postimg.cc/XYD2ts21/miniatura1-sofa.png",
	"https://i.postimg.cc/XYvH2Rgy/miniatura2-sofa.png",
	"https://i.postimg.cc/DzJCh1Hv/miniatura3-sofa.png",
	"https://i.postimg.cc/KY608Rhn/miniatura4-sofa.png",
}

// Generator is not safe for concurrent use.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator returns a generator; seed 0 picks a random seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

// Product builds one synthetic product in a category drawn uniformly from categories,
// which must not be empty.
func (g *Generator) Product(categories []model.Category) *dto.CreateProductInput {
	f := g.faker
	category := categories[f.IntRange(0, len(categories)-1)]
	price := decimal.NewFromInt(int64(f.IntRange(MinPrice, MaxPrice)))

	in := &dto.CreateProductInput{
		Name:             truncate(f.ProductName(), 50),
		SKU:              truncate(f.DigitN(10), skuLength),
		CategoryID:       category.ID,
		Description:      truncate(f.ProductName(), 250),
		LargeDescription: truncate(f.LoremIpsumSentence(largeDescWords), 500),
		Price:            price,
		IsNew:            f.Float64() < newProbability,
		ImageLink:        images[f.IntRange(0, len(images)-1)],
		OtherImagesLink:  g.otherImages(),
	}

	if f.Float64() < discountProbability {
		pct := f.IntRange(MinDiscountPercent, MaxDiscountPercent)
		in.DiscountPercent = &pct
		in.DiscountPrice = decimal.NewNullDecimal(DiscountedPrice(price, pct))
	}
	return in
}

// DiscountedPrice is price * (1 - percent/100).
func DiscountedPrice(price decimal.Decimal, percent int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(100 - percent))).Div(decimal.NewFromInt(100))
}

func (g *Generator) otherImages() model.ImageList {
	pool := append([]string{}, miniImages...)
	g.faker.ShuffleStrings(pool)
	return model.ImageList(pool[:otherImagesCount])
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
