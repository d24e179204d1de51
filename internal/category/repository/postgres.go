package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/projectcnw/sales-backoffice/internal/category"
	"github.com/projectcnw/sales-backoffice/internal/model"
)

type PGRepository struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{db: db, ext: db}
}

func (r *PGRepository) InTx(ctx context.Context, fn func(category.Repository) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "begin tx")
	}
	defer tx.Rollback()

	if err := fn(&PGRepository{db: r.db, ext: tx}); err != nil {
		return err
	}
	return errors.Wrap(tx.Commit(), "commit tx")
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Category, error) {
	categories := []model.Category{}
	query := `SELECT * FROM categories ORDER BY title ASC`
	if err := sqlx.SelectContext(ctx, r.ext, &categories, query); err != nil {
		return nil, errors.Wrap(err, "list categories")
	}
	return categories, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int) (*model.Category, error) {
	var c model.Category
	query := `SELECT * FROM categories WHERE id = $1 LIMIT 1`
	if err := sqlx.GetContext(ctx, r.ext, &c, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find category")
	}
	return &c, nil
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Category, error) {
	var c model.Category
	query := `SELECT * FROM categories WHERE slug = $1 LIMIT 1`
	if err := sqlx.GetContext(ctx, r.ext, &c, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find category by slug")
	}
	return &c, nil
}

func (r *PGRepository) Insert(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (title, slug, description, meta_title, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	err := sqlx.GetContext(ctx, r.ext, &c.ID, query, c.Title, c.Slug, c.Description, c.MetaTitle, c.CreatedAt, c.UpdatedAt)
	return errors.Wrap(err, "insert category")
}

func (r *PGRepository) Update(ctx context.Context, c *model.Category) error {
	query := `
        UPDATE categories
        SET title = $2, slug = $3, description = $4, meta_title = $5, updated_at = now()
        WHERE id = $1
    `
	_, err := r.ext.ExecContext(ctx, query, c.ID, c.Title, c.Slug, c.Description, c.MetaTitle)
	return errors.Wrap(err, "update category")
}

// Delete also clears the product and promotion links of the category.
func (r *PGRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.ext.ExecContext(ctx, `DELETE FROM product_categories WHERE category_id = $1`, id); err != nil {
		return errors.Wrap(err, "clear category product links")
	}
	if _, err := r.ext.ExecContext(ctx, `DELETE FROM promotion_categories WHERE category_id = $1`, id); err != nil {
		return errors.Wrap(err, "clear category promotion links")
	}
	_, err := r.ext.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	return errors.Wrap(err, "delete category")
}

func (r *PGRepository) CountProducts(ctx context.Context, categoryID int) (int, error) {
	var count int
	query := `
        SELECT count(*) FROM product_categories pc
        JOIN base_products p ON p.id = pc.product_id
        WHERE pc.category_id = $1 AND p.is_deleted = FALSE
    `
	if err := sqlx.GetContext(ctx, r.ext, &count, query, categoryID); err != nil {
		return 0, errors.Wrap(err, "count category products")
	}
	return count, nil
}
