package dto

import (
	"time"

	"github.com/projectcnw/sales-backoffice/internal/model"
)

type PublishInput struct {
	ProductID int      `json:"productId" binding:"required"`
	Channels  []string `json:"salesChannels" binding:"required,min=1,dive,required"`
}

type RepublishInput struct {
	Channels []string `json:"salesChannels" binding:"required,min=1,dive,required"`
}

type ProductChannelDTO struct {
	Channel     string     `json:"channel"`
	Status      string     `json:"status"`
	PublishedAt *time.Time `json:"publishedAt"`
}

func FromModel(pc *model.ProductChannel) ProductChannelDTO {
	return ProductChannelDTO{
		Channel:     pc.Channel,
		Status:      string(pc.Status),
		PublishedAt: pc.PublishedAt,
	}
}

// ProductPublishedEvent is the message emitted to the broker when a
// product is published to one or more sales channels.
type ProductPublishedEvent struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	Payload   PublishedPayload `json:"payload"`
	Timestamp time.Time        `json:"timestamp"`
}

type PublishedPayload struct {
	ProductID int      `json:"product_id"`
	Channels  []string `json:"channels"`
}
