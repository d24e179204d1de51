package promotion

import (
	"context"

	"github.com/projectcnw/sales-backoffice/internal/promotion/dto"
)

type UseCase interface {
	ListPromotions(ctx context.Context) ([]dto.PromotionDTO, error)
	GetPromotion(ctx context.Context, id int) (*dto.PromotionDTO, error)
	CreatePromotion(ctx context.Context, in *dto.CreatePromotionInput) (*dto.PromotionDTO, error)
	UpdatePromotion(ctx context.Context, id int, in *dto.UpdatePromotionInput) (*dto.PromotionDTO, error)
	DeletePromotion(ctx context.Context, id int) error
}
