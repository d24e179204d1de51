package dto

import "time"

type VariantInput struct {
	Sku      string `json:"sku"`
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity" binding:"gte=0"`
	Value1   string `json:"value1"`
	Value2   string `json:"value2"`
	Value3   string `json:"value3"`
}

type CreateBaseProductInput struct {
	Name        string         `json:"name" binding:"required"`
	Label       string         `json:"label"`
	Description string         `json:"description"`
	Attribute1  string         `json:"attribute1"`
	Attribute2  string         `json:"attribute2"`
	Attribute3  string         `json:"attribute3"`
	CategoryIds []int          `json:"categoryIds"`
	Variants    []VariantInput `json:"variants" binding:"dive"`
}

type UpdateBaseProductInput struct {
	Name        string `json:"name"`
	Label       string `json:"label"`
	Description string `json:"description"`
	CategoryIds []int  `json:"categoryIds"`
}

// AttributeInput carries both attribute mutations: rename uses KeyAttribute
// plus Name, creation uses Name plus the default Value back-filled onto
// every variant.
type AttributeInput struct {
	KeyAttribute string `json:"keyAttribute"`
	Name         string `json:"name"`
	Value        string `json:"value"`
}

type UpdateVariantInput struct {
	ID       int    `json:"id" binding:"required"`
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity" binding:"gte=0"`
	Value1   string `json:"value1"`
	Value2   string `json:"value2"`
	Value3   string `json:"value3"`
}

// ListQuery is the raw query surface of the product list endpoint.
// CategoryIds and Channels are comma-separated, dates are yyyy-MM-dd.
type ListQuery struct {
	Page        int
	Size        int
	Query       string
	CategoryIds string
	StartDate   string
	EndDate     string
	Channels    string
}

// ProductFilter is the parsed form handed to the repository.
type ProductFilter struct {
	Query       string
	CategoryIDs []int
	Channels    []string
	StartDate   *time.Time
	EndDate     *time.Time
	Page        int
	Size        int
}
