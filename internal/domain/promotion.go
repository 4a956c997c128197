package domain

import "time"

// PromotionType determines how a promotion's value is applied.
type PromotionType string

const (
	PromotionPercentage   PromotionType = "percentage"
	PromotionFixed        PromotionType = "fixed"
	PromotionFreeDelivery PromotionType = "free_delivery"
	PromotionFreeItem     PromotionType = "free_item"
)

// Promotion is a named discount rule identified by a redeemable code.
// Codes are case-insensitive unique. Usage counters are maintained by the
// promotion service and read-only here.
//
// Objects arriving from the promotion service are validated against the
// struct tags before evaluation; see promotion.ValidateAll.
type Promotion struct {
	ID            string        `json:"_id"`
	Code          string        `json:"code" validate:"required"`
	Type          PromotionType `json:"type" validate:"required,oneof=percentage fixed free_delivery free_item"`
	Value         float64       `json:"value" validate:"gte=0"`
	MinOrderValue int64         `json:"minOrderValue" validate:"gte=0"`
	MaxDiscount   int64         `json:"maxDiscount" validate:"gte=0"`
	StartsAt      time.Time     `json:"startDate"`
	EndsAt        time.Time     `json:"endDate"`
	IsActive      bool          `json:"isActive"`
	UsageCount    int           `json:"usageCount"`
	UsageLimit    int           `json:"usageLimit"`
}

// ActiveAt reports whether the promotion may be applied at t.
// A zero EndsAt means the window is open-ended.
func (p Promotion) ActiveAt(t time.Time) bool {
	if !p.IsActive {
		return false
	}
	if !p.StartsAt.IsZero() && t.Before(p.StartsAt) {
		return false
	}
	if !p.EndsAt.IsZero() && t.After(p.EndsAt) {
		return false
	}
	return true
}

// DiscountResult is the outcome of evaluating one promotion against one
// order subtotal. Amount is always >= 0. A non-empty Reason means the
// promotion was rejected and Amount is 0. Results are recomputed per
// evaluation and never persisted.
type DiscountResult struct {
	Promotion Promotion
	Amount    int64
	Reason    string
}

// Applied reports whether the promotion produced an applicable result.
// A free_item promotion applies with a zero monetary amount: fulfillment
// is handled out of band.
func (r DiscountResult) Applied() bool {
	return r.Reason == ""
}
