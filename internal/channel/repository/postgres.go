package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/projectcnw/sales-backoffice/internal/channel"
	"github.com/projectcnw/sales-backoffice/internal/model"
)

type PGRepository struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{db: db, ext: db}
}

func (r *PGRepository) InTx(ctx context.Context, fn func(channel.Repository) error) error {
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

func (r *PGRepository) ProductExists(ctx context.Context, productID int) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM base_products WHERE id = $1 AND is_deleted = FALSE)`
	if err := sqlx.GetContext(ctx, r.ext, &exists, query, productID); err != nil {
		return false, errors.Wrap(err, "check product exists")
	}
	return exists, nil
}

func (r *PGRepository) ChannelsByProductID(ctx context.Context, productID int) ([]model.ProductChannel, error) {
	channels := []model.ProductChannel{}
	query := `SELECT * FROM product_channels WHERE product_id = $1 ORDER BY channel ASC`
	if err := sqlx.SelectContext(ctx, r.ext, &channels, query, productID); err != nil {
		return nil, errors.Wrap(err, "list product channels")
	}
	return channels, nil
}

func (r *PGRepository) UpsertChannel(ctx context.Context, productID int, ch string) error {
	query := `
        INSERT INTO product_channels (product_id, channel, status, published_at, updated_at)
        VALUES ($1, $2, 'PUBLISHED', now(), now())
        ON CONFLICT (product_id, channel)
        DO UPDATE SET status = 'PUBLISHED', published_at = now(), updated_at = now()
    `
	_, err := r.ext.ExecContext(ctx, query, productID, ch)
	return errors.Wrap(err, "upsert product channel")
}

// UnpublishedProductIDs returns live products with no published row on the channel.
func (r *PGRepository) UnpublishedProductIDs(ctx context.Context, ch string) ([]int, error) {
	ids := []int{}
	query := `
        SELECT p.id FROM base_products p
        WHERE p.is_deleted = FALSE
          AND NOT EXISTS (
            SELECT 1 FROM product_channels pc
            WHERE pc.product_id = p.id AND pc.channel = $1 AND pc.status = 'PUBLISHED'
          )
        ORDER BY p.id
    `
	if err := sqlx.SelectContext(ctx, r.ext, &ids, query, ch); err != nil {
		return nil, errors.Wrap(err, "unpublished product ids")
	}
	return ids, nil
}

func (r *PGRepository) RemoveChannelsNotIn(ctx context.Context, productID int, channels []string) error {
	if len(channels) == 0 {
		_, err := r.ext.ExecContext(ctx, `DELETE FROM product_channels WHERE product_id = $1`, productID)
		return errors.Wrap(err, "clear product channels")
	}
	query, args, err := sqlx.In(`DELETE FROM product_channels WHERE product_id = ? AND channel NOT IN (?)`, productID, channels)
	if err != nil {
		return errors.Wrap(err, "build channel delete")
	}
	_, err = r.ext.ExecContext(ctx, r.ext.Rebind(query), args...)
	return errors.Wrap(err, "remove stale product channels")
}
