package model

import "time"

type PromotionValueType string

const (
	PromotionValuePercent PromotionValueType = "PERCENT"
	PromotionValueFixed   PromotionValueType = "FIXED"
)

type PromotionPolicyApply string

const (
	PromotionApplyProduct  PromotionPolicyApply = "PRODUCT"
	PromotionApplyCategory PromotionPolicyApply = "CATEGORY"
)

// Promotion is a time-bounded discount applying to a set of products
// and/or categories.
type Promotion struct {
	BaseModel
	Title       string               `db:"title" json:"title"`
	Value       int                  `db:"value" json:"value"`
	ValueType   PromotionValueType   `db:"value_type" json:"valueType"`
	PolicyApply PromotionPolicyApply `db:"policy_apply" json:"policyApply"`
	StartDate   time.Time            `db:"start_date" json:"startDate"`
	EndDate     time.Time            `db:"end_date" json:"endDate"`
	Description string               `db:"description" json:"description"`
}
