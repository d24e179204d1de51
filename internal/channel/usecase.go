package channel

import (
	"context"

	"github.com/projectcnw/sales-backoffice/internal/channel/dto"
)

type UseCase interface {
	PublishProduct(ctx context.Context, in *dto.PublishInput) ([]dto.ProductChannelDTO, error)
	PublishAll(ctx context.Context) (int, error)
	Republish(ctx context.Context, productID int, in *dto.RepublishInput) ([]dto.ProductChannelDTO, error)
	ProductChannels(ctx context.Context, productID int) ([]dto.ProductChannelDTO, error)
}
