package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/projectcnw/sales-backoffice/internal/model"
	"github.com/projectcnw/sales-backoffice/internal/promotion"
)

type PGRepository struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{db: db, ext: db}
}

func (r *PGRepository) InTx(ctx context.Context, fn func(promotion.Repository) error) error {
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

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Promotion, error) {
	promotions := []model.Promotion{}
	query := `SELECT * FROM promotions ORDER BY start_date DESC, id DESC`
	if err := sqlx.SelectContext(ctx, r.ext, &promotions, query); err != nil {
		return nil, errors.Wrap(err, "list promotions")
	}
	return promotions, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id int) (*model.Promotion, error) {
	var p model.Promotion
	query := `SELECT * FROM promotions WHERE id = $1 LIMIT 1`
	if err := sqlx.GetContext(ctx, r.ext, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find promotion")
	}
	return &p, nil
}

func (r *PGRepository) Insert(ctx context.Context, p *model.Promotion) error {
	query := `
        INSERT INTO promotions (title, value, value_type, policy_apply, start_date, end_date, description, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id
    `
	err := sqlx.GetContext(ctx, r.ext, &p.ID, query,
		p.Title, p.Value, p.ValueType, p.PolicyApply, p.StartDate, p.EndDate, p.Description, p.CreatedAt, p.UpdatedAt)
	return errors.Wrap(err, "insert promotion")
}

func (r *PGRepository) Update(ctx context.Context, p *model.Promotion) error {
	query := `
        UPDATE promotions
        SET title = $2, value = $3, value_type = $4, policy_apply = $5,
            start_date = $6, end_date = $7, description = $8, updated_at = now()
        WHERE id = $1
    `
	_, err := r.ext.ExecContext(ctx, query,
		p.ID, p.Title, p.Value, p.ValueType, p.PolicyApply, p.StartDate, p.EndDate, p.Description)
	return errors.Wrap(err, "update promotion")
}

func (r *PGRepository) Delete(ctx context.Context, id int) error {
	if _, err := r.ext.ExecContext(ctx, `DELETE FROM promotion_products WHERE promotion_id = $1`, id); err != nil {
		return errors.Wrap(err, "clear promotion product links")
	}
	if _, err := r.ext.ExecContext(ctx, `DELETE FROM promotion_categories WHERE promotion_id = $1`, id); err != nil {
		return errors.Wrap(err, "clear promotion category links")
	}
	_, err := r.ext.ExecContext(ctx, `DELETE FROM promotions WHERE id = $1`, id)
	return errors.Wrap(err, "delete promotion")
}

func (r *PGRepository) ProductIDs(ctx context.Context, promotionID int) ([]int, error) {
	ids := []int{}
	query := `SELECT product_id FROM promotion_products WHERE promotion_id = $1 ORDER BY product_id`
	if err := sqlx.SelectContext(ctx, r.ext, &ids, query, promotionID); err != nil {
		return nil, errors.Wrap(err, "promotion product ids")
	}
	return ids, nil
}

func (r *PGRepository) CategoryIDs(ctx context.Context, promotionID int) ([]int, error) {
	ids := []int{}
	query := `SELECT category_id FROM promotion_categories WHERE promotion_id = $1 ORDER BY category_id`
	if err := sqlx.SelectContext(ctx, r.ext, &ids, query, promotionID); err != nil {
		return nil, errors.Wrap(err, "promotion category ids")
	}
	return ids, nil
}

func (r *PGRepository) ReplaceProducts(ctx context.Context, promotionID int, productIDs []int) error {
	if _, err := r.ext.ExecContext(ctx, `DELETE FROM promotion_products WHERE promotion_id = $1`, promotionID); err != nil {
		return errors.Wrap(err, "clear promotion products")
	}
	for _, pid := range productIDs {
		_, err := r.ext.ExecContext(ctx,
			`INSERT INTO promotion_products (promotion_id, product_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			promotionID, pid)
		if err != nil {
			return errors.Wrap(err, "link promotion product")
		}
	}
	return nil
}

func (r *PGRepository) ReplaceCategories(ctx context.Context, promotionID int, categoryIDs []int) error {
	if _, err := r.ext.ExecContext(ctx, `DELETE FROM promotion_categories WHERE promotion_id = $1`, promotionID); err != nil {
		return errors.Wrap(err, "clear promotion categories")
	}
	for _, cid := range categoryIDs {
		_, err := r.ext.ExecContext(ctx,
			`INSERT INTO promotion_categories (promotion_id, category_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			promotionID, cid)
		if err != nil {
			return errors.Wrap(err, "link promotion category")
		}
	}
	return nil
}
