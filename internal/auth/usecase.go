package auth

import (
	"context"

	"github.com/projectcnw/sales-backoffice/internal/auth/dto"
)

type UseCase interface {
	Register(ctx context.Context, in *dto.RegisterInput) (*dto.AuthResponse, error)
	Login(ctx context.Context, in *dto.LoginInput) (*dto.AuthResponse, error)
	Logout(ctx context.Context, rawToken string) error
}
