package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/apperror"
	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

var productColumnList = []string{
	"id", "name", "sku", "category_id", "description", "large_description",
	"price", "discount_price", "discount_percent", "is_new",
	"image_link", "other_images_link", "created_date", "updated_date",
}

var productColumns = strings.Join(productColumnList, ", ")

const insertProduct = `
        INSERT INTO products (
            name, sku, category_id, description, large_description,
            price, discount_price, discount_percent, is_new,
            image_link, other_images_link, created_date, updated_date
        )
        VALUES (
            :name, :sku, :category_id, :description, :large_description,
            :price, :discount_price, :discount_percent, :is_new,
            :image_link, :other_images_link, :created_date, :updated_date
        )
        RETURNING id
    `

// findProductWithCategory aliases the joined category columns as category.<col> so
// sqlx maps them onto the nested struct.
var findProductWithCategory = `
        SELECT ` + prefixed("p", productColumnList, "") + `,
               ` + prefixed("c", []string{"id", "name", "image_link", "created_date", "updated_date"}, "category") + `
        FROM products p
        JOIN categories c ON c.id = p.category_id
        WHERE p.id = ?
        LIMIT 1
    `

type productWithCategory struct {
	model.Product
	Cat model.Category `db:"category"`
}

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, p *model.Product) error {
	query, args, err := sqlx.Named(insertProduct, p)
	if err != nil {
		return apperror.Storage("bind product insert", err)
	}
	err = r.DB.QueryRowxContext(ctx, r.DB.Rebind(query), args...).Scan(&p.ID)
	if err != nil {
		return apperror.FromDB("insert product", err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Product, error) {
	var row productWithCategory
	err := r.DB.GetContext(ctx, &row, r.DB.Rebind(findProductWithCategory), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.FromDB("find product", err)
	}

	product := row.Product
	product.Category = &row.Cat
	return &product, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.ProductFilters) ([]model.Product, int, error) {
	plan := buildProductPlan(f)
	limit, offset := f.Window()

	countQuery, countArgs, err := plan.countQuery()
	if err != nil {
		return nil, 0, apperror.Storage("build product count", err)
	}
	var count int
	if err := r.DB.GetContext(ctx, &count, r.DB.Rebind(countQuery), countArgs...); err != nil {
		return nil, 0, apperror.FromDB("count products", err)
	}

	pageQuery, pageArgs, err := plan.pageQuery(limit, offset)
	if err != nil {
		return nil, 0, apperror.Storage("build product page", err)
	}
	products := []model.Product{}
	if err := r.DB.SelectContext(ctx, &products, r.DB.Rebind(pageQuery), pageArgs...); err != nil {
		return nil, 0, apperror.FromDB("list products", err)
	}

	return products, count, nil
}

func prefixed(table string, cols []string, alias string) string {
	out := make([]string, len(cols))
	for i, col := range cols {
		out[i] = table + "." + col
		if alias != "" {
			out[i] += ` AS "` + alias + "." + col + `"`
		}
	}
	return strings.Join(out, ", ")
}
