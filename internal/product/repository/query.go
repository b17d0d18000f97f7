package repository

import (
	"sort"
	"strings"

	"github.com/fekuna/omnipos-catalog-service/internal/product/dto"
	"github.com/jmoiron/sqlx"
)

const effectivePrice = "COALESCE(discount_price, price)"

// queryPlan is a product listing before windowing. Conditions are ANDed; placeholders
// are written as ? and slice arguments are expanded by sqlx.In.
type queryPlan struct {
	conditions []string
	args       []any
	orderBy    []string
}

// planStep refines a plan from one filter field. Steps never remove what an earlier
// step added.
type planStep func(p *queryPlan, f *dto.ProductFilters)

var productPlanSteps = []planStep{
	filterByCategories,
	filterByDiscount,
	orderByEffectivePrice,
}

func buildProductPlan(f *dto.ProductFilters) *queryPlan {
	p := &queryPlan{}
	for _, step := range productPlanSteps {
		step(p, f)
	}
	return p
}

func filterByCategories(p *queryPlan, f *dto.ProductFilters) {
	ids := uniqueIDs(f.Categories)
	if len(ids) == 0 {
		return
	}
	p.conditions = append(p.conditions, "category_id IN (?)")
	p.args = append(p.args, ids)
}

func filterByDiscount(p *queryPlan, f *dto.ProductFilters) {
	if f.HasDiscount {
		p.conditions = append(p.conditions, "discount_percent > 0")
	}
}

// orderByEffectivePrice ignores values outside the enum rather than guessing a direction.
func orderByEffectivePrice(p *queryPlan, f *dto.ProductFilters) {
	switch f.OrderBy {
	case dto.OrderByPriceAsc:
		p.orderBy = append(p.orderBy, effectivePrice+" ASC")
	case dto.OrderByPriceDesc:
		p.orderBy = append(p.orderBy, effectivePrice+" DESC")
	}
}

func (p *queryPlan) where() string {
	if len(p.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.conditions, " AND ")
}

// countQuery counts the whole matching set.
func (p *queryPlan) countQuery() (string, []any, error) {
	return sqlx.In("SELECT count(*) FROM products"+p.where(), p.args...)
}

// pageQuery selects one window. id is always the last sort key so that consecutive
// windows neither overlap nor skip rows.
func (p *queryPlan) pageQuery(limit, offset int) (string, []any, error) {
	order := append(append([]string{}, p.orderBy...), "id ASC")
	query := "SELECT " + productColumns + " FROM products" + p.where() +
		" ORDER BY " + strings.Join(order, ", ") +
		" LIMIT ? OFFSET ?"

	args := append(append([]any{}, p.args...), limit, offset)
	return sqlx.In(query, args...)
}

func uniqueIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
