package usecase

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
	"github.com/projectcnw/sales-backoffice/internal/channel"
	"github.com/projectcnw/sales-backoffice/internal/channel/dto"
)

// DefaultChannel receives products published through publish-all.
const DefaultChannel = "online-store"

const eventTypePublished = "ProductPublished"

// EventProducer is the broker side of publishing, satisfied by broker.KafkaProducer.
type EventProducer interface {
	Publish(ctx context.Context, key, value []byte) error
}

type channelUseCase struct {
	repo     channel.Repository
	producer EventProducer
	logger   *zap.Logger
}

func NewChannelUseCase(repo channel.Repository, producer EventProducer, logger *zap.Logger) channel.UseCase {
	return &channelUseCase{repo: repo, producer: producer, logger: logger}
}

func (u *channelUseCase) PublishProduct(ctx context.Context, in *dto.PublishInput) ([]dto.ProductChannelDTO, error) {
	exists, err := u.repo.ProductExists(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("product")
	}

	err = u.repo.InTx(ctx, func(repo channel.Repository) error {
		for _, ch := range in.Channels {
			if err := repo.UpsertChannel(ctx, in.ProductID, ch); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.emit(in.ProductID, in.Channels)
	return u.ProductChannels(ctx, in.ProductID)
}

// PublishAll publishes every product that has no published record on the
// default channel. Returns the number of products published.
func (u *channelUseCase) PublishAll(ctx context.Context) (int, error) {
	ids, err := u.repo.UnpublishedProductIDs(ctx, DefaultChannel)
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err = u.repo.InTx(ctx, func(repo channel.Repository) error {
		for _, id := range ids {
			if err := repo.UpsertChannel(ctx, id, DefaultChannel); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	for _, id := range ids {
		u.emit(id, []string{DefaultChannel})
	}
	u.logger.Info("published all unpublished products", zap.Int("count", len(ids)))
	return len(ids), nil
}

// Republish replaces the product's channel set: channels absent from the
// input are removed, the rest are upserted as published.
func (u *channelUseCase) Republish(ctx context.Context, productID int, in *dto.RepublishInput) ([]dto.ProductChannelDTO, error) {
	exists, err := u.repo.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("product")
	}

	err = u.repo.InTx(ctx, func(repo channel.Repository) error {
		if err := repo.RemoveChannelsNotIn(ctx, productID, in.Channels); err != nil {
			return err
		}
		for _, ch := range in.Channels {
			if err := repo.UpsertChannel(ctx, productID, ch); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.emit(productID, in.Channels)
	return u.ProductChannels(ctx, productID)
}

func (u *channelUseCase) ProductChannels(ctx context.Context, productID int) ([]dto.ProductChannelDTO, error) {
	exists, err := u.repo.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("product")
	}

	channels, err := u.repo.ChannelsByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductChannelDTO, 0, len(channels))
	for i := range channels {
		out = append(out, dto.FromModel(&channels[i]))
	}
	return out, nil
}

// emit sends the publish event without blocking the request.
func (u *channelUseCase) emit(productID int, channels []string) {
	if u.producer == nil {
		return
	}
	event := dto.ProductPublishedEvent{
		EventID:   uuid.NewString(),
		EventType: eventTypePublished,
		Payload:   dto.PublishedPayload{ProductID: productID, Channels: channels},
		Timestamp: time.Now().UTC(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		u.logger.Error("failed to marshal publish event", zap.Error(err))
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := u.producer.Publish(ctx, []byte(strconv.Itoa(productID)), value); err != nil {
			u.logger.Error("failed to publish product event",
				zap.Int("product_id", productID),
				zap.Error(err),
			)
		}
	}()
}
