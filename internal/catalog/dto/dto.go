package dto

import (
	"time"

	"github.com/projectcnw/sales-backoffice/internal/model"
)

type CategoryResponse struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Slug         string `json:"slug"`
	Description  string `json:"description"`
	MetaTitle    string `json:"metaTitle"`
	ProductCount int    `json:"productCount"`
}

type BaseProductDTO struct {
	ID             int                `json:"id"`
	Name           string             `json:"name"`
	Label          string             `json:"label"`
	Description    string             `json:"description"`
	Attribute1     string             `json:"attribute1"`
	Attribute2     string             `json:"attribute2"`
	Attribute3     string             `json:"attribute3"`
	CreatedAt      time.Time          `json:"createdAt"`
	VariantNumber  int                `json:"variantNumber"`
	Quantity       int                `json:"quantity"`
	Variants       []model.Variant    `json:"variants"`
	ListCategories []CategoryResponse `json:"listCategories"`
}
