package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/projectcnw/sales-backoffice/internal/auth"
	"github.com/projectcnw/sales-backoffice/internal/model"
)

type PGRepository struct {
	db  *sqlx.DB
	ext sqlx.ExtContext
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{db: db, ext: db}
}

func (r *PGRepository) InTx(ctx context.Context, fn func(auth.Repository) error) error {
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

func (r *PGRepository) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	query := `SELECT * FROM users WHERE email = $1 LIMIT 1`
	if err := sqlx.GetContext(ctx, r.ext, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find user by email")
	}
	return &user, nil
}

func (r *PGRepository) InsertUser(ctx context.Context, u *model.User) error {
	query := `
        INSERT INTO users (name, email, password, role, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	err := sqlx.GetContext(ctx, r.ext, &u.ID, query, u.Name, u.Email, u.Password, u.Role, u.CreatedAt)
	return errors.Wrap(err, "insert user")
}

func (r *PGRepository) FindTokenByValue(ctx context.Context, token string) (*model.Token, error) {
	var t model.Token
	query := `SELECT * FROM tokens WHERE token = $1 LIMIT 1`
	if err := sqlx.GetContext(ctx, r.ext, &t, query, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "find token")
	}
	return &t, nil
}

func (r *PGRepository) InsertToken(ctx context.Context, t *model.Token) error {
	query := `
        INSERT INTO tokens (user_id, token, expired, revoked, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	err := sqlx.GetContext(ctx, r.ext, &t.ID, query, t.UserID, t.Token, t.Expired, t.Revoked, t.CreatedAt)
	return errors.Wrap(err, "insert token")
}

func (r *PGRepository) RevokeUserTokens(ctx context.Context, userID int) error {
	query := `UPDATE tokens SET expired = TRUE, revoked = TRUE WHERE user_id = $1 AND (expired = FALSE OR revoked = FALSE)`
	_, err := r.ext.ExecContext(ctx, query, userID)
	return errors.Wrap(err, "revoke user tokens")
}

func (r *PGRepository) RevokeToken(ctx context.Context, id int) error {
	query := `UPDATE tokens SET expired = TRUE, revoked = TRUE WHERE id = $1`
	_, err := r.ext.ExecContext(ctx, query, id)
	return errors.Wrap(err, "revoke token")
}
