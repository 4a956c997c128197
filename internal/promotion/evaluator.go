package promotion

import (
	"math"
	"time"

	"github.com/tavolohq/tavolo/internal/domain"
)

// Rejection reasons surfaced on DiscountResult. These are user-facing.
const (
	ReasonInactive     = "promotion is not active"
	ReasonNotStarted   = "promotion has not started yet"
	ReasonExpired      = "promotion has expired"
	ReasonBelowMinimum = "below minimum order value"
	ReasonUnknownType  = "unknown promotion type"
)

// Evaluator computes discounts from promotions. It is pure: no side
// effects, no errors, no panics. The delivery fee is the storefront's
// flat shipping constant, credited back by free_delivery promotions.
type Evaluator struct {
	deliveryFee int64
	now         func() time.Time
}

// NewEvaluator creates an Evaluator with the given flat delivery fee in
// minor currency units.
func NewEvaluator(deliveryFee int64) *Evaluator {
	return &Evaluator{
		deliveryFee: deliveryFee,
		now:         time.Now,
	}
}

// Evaluate computes the discount p grants against an order subtotal.
// Rejections are reported on the result, never as errors.
func (e *Evaluator) Evaluate(p domain.Promotion, subtotal int64) domain.DiscountResult {
	result := domain.DiscountResult{Promotion: p}

	now := e.now()
	switch {
	case !p.IsActive:
		result.Reason = ReasonInactive
		return result
	case !p.StartsAt.IsZero() && now.Before(p.StartsAt):
		result.Reason = ReasonNotStarted
		return result
	case !p.EndsAt.IsZero() && now.After(p.EndsAt):
		result.Reason = ReasonExpired
		return result
	}

	if p.MinOrderValue > 0 && subtotal < p.MinOrderValue {
		result.Reason = ReasonBelowMinimum
		return result
	}

	switch p.Type {
	case domain.PromotionPercentage:
		discount := roundToUnit(float64(subtotal) * p.Value / 100)
		if p.MaxDiscount > 0 && discount > p.MaxDiscount {
			discount = p.MaxDiscount
		}
		result.Amount = discount
	case domain.PromotionFixed:
		result.Amount = roundToUnit(p.Value)
	case domain.PromotionFreeDelivery:
		result.Amount = e.deliveryFee
	case domain.PromotionFreeItem:
		// Granted item is fulfilled out of band; no monetary reduction.
		result.Amount = 0
	default:
		result.Reason = ReasonUnknownType
	}

	return result
}

// FinalAmount returns the payable total after applying a discount.
// Never negative.
func FinalAmount(totalAmount, discount int64) int64 {
	if discount >= totalAmount {
		return 0
	}
	return totalAmount - discount
}

// roundToUnit rounds to the nearest whole currency unit.
func roundToUnit(v float64) int64 {
	return int64(math.Round(v))
}
