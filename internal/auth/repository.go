package auth

import (
	"context"

	"github.com/projectcnw/sales-backoffice/internal/model"
)

type Repository interface {
	InTx(ctx context.Context, fn func(Repository) error) error

	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	InsertUser(ctx context.Context, u *model.User) error

	FindTokenByValue(ctx context.Context, token string) (*model.Token, error)
	InsertToken(ctx context.Context, t *model.Token) error
	// RevokeUserTokens marks every live token of a user expired and revoked,
	// used to rotate on login.
	RevokeUserTokens(ctx context.Context, userID int) error
	RevokeToken(ctx context.Context, id int) error
}
