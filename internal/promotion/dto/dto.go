package dto

import (
	"time"

	"github.com/projectcnw/sales-backoffice/internal/model"
)

type PromotionDTO struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Value       int       `json:"value"`
	ValueType   string    `json:"valueType"`
	PolicyApply string    `json:"policyApply"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	ProductIds  []int     `json:"productIds"`
	CategoryIds []int     `json:"categoryIds"`
}

func FromModel(p *model.Promotion, productIDs, categoryIDs []int, now time.Time) PromotionDTO {
	if productIDs == nil {
		productIDs = []int{}
	}
	if categoryIDs == nil {
		categoryIDs = []int{}
	}
	return PromotionDTO{
		ID:          p.ID,
		Title:       p.Title,
		Value:       p.Value,
		ValueType:   string(p.ValueType),
		PolicyApply: string(p.PolicyApply),
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Description: p.Description,
		Active:      !now.Before(p.StartDate) && !now.After(p.EndDate),
		ProductIds:  productIDs,
		CategoryIds: categoryIDs,
	}
}
