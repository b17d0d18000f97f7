package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fekuna/omnipos-catalog-service/internal/model"
	"github.com/fekuna/omnipos-catalog-service/internal/pkg/apperror"
	"github.com/jmoiron/sqlx"
)

const categoryColumns = `id, name, image_link, created_date, updated_date`

// lockForSeed blocks concurrent seeds until this transaction ends, so the emptiness
// check in CreateBatchIfEmpty cannot race. SQLite allows a single writer and needs no lock.
const lockForSeed = `LOCK TABLE categories IN SHARE ROW EXCLUSIVE MODE`

const insertCategory = `
        INSERT INTO categories (name, image_link, created_date, updated_date)
        VALUES (:name, :image_link, :created_date, :updated_date)
        RETURNING id
    `

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	if err := r.insert(ctx, r.DB, c); err != nil {
		return apperror.FromDB("insert category", err)
	}
	return nil
}

// insert runs the named INSERT through q and writes the generated id back into c.
func (r *PGRepository) insert(ctx context.Context, q sqlx.QueryerContext, c *model.Category) error {
	query, args, err := sqlx.Named(insertCategory, c)
	if err != nil {
		return err
	}
	return q.QueryRowxContext(ctx, r.DB.Rebind(query), args...).Scan(&c.ID)
}

func (r *PGRepository) FindByID(ctx context.Context, id int64) (*model.Category, error) {
	var category model.Category
	query := r.DB.Rebind(`SELECT ` + categoryColumns + ` FROM categories WHERE id = ? LIMIT 1`)
	err := r.DB.GetContext(ctx, &category, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.FromDB("find category", err)
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	query := `SELECT ` + categoryColumns + ` FROM categories ORDER BY id ASC`
	if err := r.DB.SelectContext(ctx, &categories, query); err != nil {
		return nil, apperror.FromDB("list categories", err)
	}
	return categories, nil
}

func (r *PGRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.DB.GetContext(ctx, &count, `SELECT count(*) FROM categories`); err != nil {
		return 0, apperror.FromDB("count categories", err)
	}
	return count, nil
}

func (r *PGRepository) CreateBatchIfEmpty(ctx context.Context, categories []*model.Category) (bool, error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return false, apperror.FromDB("begin category seed", err)
	}
	defer tx.Rollback()

	if stmt := seedLockStatement(r.DB.DriverName()); stmt != "" {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return false, apperror.FromDB("lock categories", err)
		}
	}

	var count int
	if err := tx.GetContext(ctx, &count, `SELECT count(*) FROM categories`); err != nil {
		return false, apperror.FromDB("count categories", err)
	}
	if count > 0 {
		return false, nil
	}

	for _, c := range categories {
		if err := r.insert(ctx, tx, c); err != nil {
			return false, apperror.FromDB("insert category", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, apperror.FromDB("commit category seed", err)
	}
	return true, nil
}

func seedLockStatement(driverName string) string {
	if sqlx.BindType(driverName) == sqlx.DOLLAR {
		return lockForSeed
	}
	return ""
}
