package channel

import (
	"context"

	"github.com/projectcnw/sales-backoffice/internal/model"
)

type Repository interface {
	InTx(ctx context.Context, fn func(Repository) error) error

	ProductExists(ctx context.Context, productID int) (bool, error)
	ChannelsByProductID(ctx context.Context, productID int) ([]model.ProductChannel, error)
	UpsertChannel(ctx context.Context, productID int, channel string) error
	UnpublishedProductIDs(ctx context.Context, channel string) ([]int, error)
	RemoveChannelsNotIn(ctx context.Context, productID int, channels []string) error
}
