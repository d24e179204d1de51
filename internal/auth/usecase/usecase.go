package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
	"github.com/projectcnw/sales-backoffice/internal/auth"
	"github.com/projectcnw/sales-backoffice/internal/auth/dto"
	"github.com/projectcnw/sales-backoffice/internal/model"
)

type authUseCase struct {
	repo   auth.Repository
	tokens *auth.TokenService
	logger *zap.Logger
}

func NewAuthUseCase(repo auth.Repository, tokens *auth.TokenService, log *zap.Logger) auth.UseCase {
	return &authUseCase{
		repo:   repo,
		tokens: tokens,
		logger: log,
	}
}

func (uc *authUseCase) Register(ctx context.Context, in *dto.RegisterInput) (*dto.AuthResponse, error) {
	existing, err := uc.repo.FindUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("email is already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:      in.Name,
		Email:     in.Email,
		Password:  string(hashed),
		Role:      "ADMIN",
		CreatedAt: time.Now(),
	}

	signed, err := uc.tokens.Generate(user.Email)
	if err != nil {
		return nil, err
	}

	err = uc.repo.InTx(ctx, func(tx auth.Repository) error {
		if err := tx.InsertUser(ctx, user); err != nil {
			return err
		}
		return tx.InsertToken(ctx, &model.Token{
			UserID:    user.ID,
			Token:     signed,
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("user registered", zap.Int("user_id", user.ID))
	return &dto.AuthResponse{Token: signed, User: user}, nil
}

// Login rotates tokens: every live token of the user is revoked before the
// fresh one is stored.
func (uc *authUseCase) Login(ctx context.Context, in *dto.LoginInput) (*dto.AuthResponse, error) {
	user, err := uc.repo.FindUserByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, apperr.Unauthorized("invalid credentials")
	}

	signed, err := uc.tokens.Generate(user.Email)
	if err != nil {
		return nil, err
	}

	err = uc.repo.InTx(ctx, func(tx auth.Repository) error {
		if err := tx.RevokeUserTokens(ctx, user.ID); err != nil {
			return err
		}
		return tx.InsertToken(ctx, &model.Token{
			UserID:    user.ID,
			Token:     signed,
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{Token: signed, User: user}, nil
}

func (uc *authUseCase) Logout(ctx context.Context, rawToken string) error {
	record, err := uc.repo.FindTokenByValue(ctx, rawToken)
	if err != nil {
		return err
	}
	if record == nil {
		return apperr.Unauthorized("unknown token")
	}
	return uc.repo.RevokeToken(ctx, record.ID)
}
