package dto

type CreatePromotionInput struct {
	Title       string `json:"title" binding:"required"`
	Value       int    `json:"value" binding:"required,gt=0"`
	ValueType   string `json:"valueType" binding:"required,oneof=PERCENT FIXED"`
	PolicyApply string `json:"policyApply" binding:"required,oneof=PRODUCT CATEGORY"`
	StartDate   string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"endDate" binding:"required,datetime=2006-01-02"`
	Description string `json:"description"`
	ProductIds  []int  `json:"productIds"`
	CategoryIds []int  `json:"categoryIds"`
}

type UpdatePromotionInput struct {
	Title       string `json:"title" binding:"required"`
	Value       int    `json:"value" binding:"required,gt=0"`
	ValueType   string `json:"valueType" binding:"required,oneof=PERCENT FIXED"`
	PolicyApply string `json:"policyApply" binding:"required,oneof=PRODUCT CATEGORY"`
	StartDate   string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate     string `json:"endDate" binding:"required,datetime=2006-01-02"`
	Description string `json:"description"`
	ProductIds  []int  `json:"productIds"`
	CategoryIds []int  `json:"categoryIds"`
}
