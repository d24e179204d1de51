package model

import "time"

type ChannelStatus string

const (
	ChannelPublished   ChannelStatus = "PUBLISHED"
	ChannelUnpublished ChannelStatus = "UNPUBLISHED"
)

// ProductChannel records the publish state of one product on one sales channel.
type ProductChannel struct {
	ID          int           `db:"id" json:"id"`
	ProductID   int           `db:"product_id" json:"productId"`
	Channel     string        `db:"channel" json:"channel"`
	Status      ChannelStatus `db:"status" json:"status"`
	PublishedAt *time.Time    `db:"published_at" json:"publishedAt"`
	UpdatedAt   time.Time     `db:"updated_at" json:"updatedAt"`
}
