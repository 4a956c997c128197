package promotion

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tavolohq/tavolo/internal/domain"
)

const testDeliveryFee = 30000

func activePromo(t domain.PromotionType, value float64) domain.Promotion {
	return domain.Promotion{
		Code:     "TEST",
		Type:     t,
		Value:    value,
		IsActive: true,
	}
}

func Test_Evaluate_PercentageCappedByMaxDiscount(t *testing.T) {
	e := NewEvaluator(testDeliveryFee)

	p := activePromo(domain.PromotionPercentage, 10)
	p.MaxDiscount = 15000

	result := e.Evaluate(p, 200000)

	assert.True(t, result.Applied())
	assert.Equal(t, int64(15000), result.Amount, "10 percent of 200000 is 20000, capped at 15000")
}

func Test_Evaluate_PercentageUncapped(t *testing.T) {
	e := NewEvaluator(testDeliveryFee)

	result := e.Evaluate(activePromo(domain.PromotionPercentage, 10), 200000)

	assert.True(t, result.Applied())
	assert.Equal(t, int64(20000), result.Amount)
}

func Test_Evaluate_FixedBelowMinimumRejected(t *testing.T) {
	e := NewEvaluator(testDeliveryFee)

	p := activePromo(domain.PromotionFixed, 20000)
	p.MinOrderValue = 150000

	result := e.Evaluate(p, 100000)

	assert.False(t, result.Applied())
	assert.Equal(t, ReasonBelowMinimum, result.Reason)
	assert.Equal(t, int64(0), result.Amount)
}

func Test_Evaluate_FixedAtMinimumApplies(t *testing.T) {
	e := NewEvaluator(testDeliveryFee)

	p := activePromo(domain.PromotionFixed, 20000)
	p.MinOrderValue = 150000

	result := e.Evaluate(p, 150000)

	assert.True(t, result.Applied())
	assert.Equal(t, int64(20000), result.Amount)
}

func Test_Evaluate_FreeDeliveryCreditsDeliveryFee(t *testing.T) {
	e := NewEvaluator(testDeliveryFee)

	for _, subtotal := range []int64{0, 50000, 1000000} {
		result := e.Evaluate(activePromo(domain.PromotionFreeDelivery, 0), subtotal)

		assert.True(t, result.Applied())
		assert.Equal(t, int64(testDeliveryFee), result.Amount)
	}
}

func Test_Evaluate_FreeItemIsZeroMonetaryDiscount(t *testing.T) {
	e := NewEvaluator(testDeliveryFee)

	result := e.Evaluate(activePromo(domain.PromotionFreeItem, 0), 80000)

	assert.True(t, result.Applied(), "free_item applies; fulfillment is out of band")
	assert.Equal(t, int64(0), result.Amount)
}

func Test_Evaluate_ValidityWindow(t *testing.T) {
	e := NewEvaluator(testDeliveryFee)
	now := time.Now()

	tests := []struct {
		name   string
		mutate func(*domain.Promotion)
		reason string
	}{
		{
			name:   "inactive",
			mutate: func(p *domain.Promotion) { p.IsActive = false },
			reason: ReasonInactive,
		},
		{
			name:   "not started",
			mutate: func(p *domain.Promotion) { p.StartsAt = now.Add(time.Hour) },
			reason: ReasonNotStarted,
		},
		{
			name:   "expired",
			mutate: func(p *domain.Promotion) { p.EndsAt = now.Add(-time.Hour) },
			reason: ReasonExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := activePromo(domain.PromotionPercentage, 10)
			tt.mutate(&p)

			result := e.Evaluate(p, 200000)

			assert.False(t, result.Applied())
			assert.Equal(t, tt.reason, result.Reason)
			assert.Equal(t, int64(0), result.Amount)
		})
	}
}

func Test_Evaluate_RoundsToNearestUnit(t *testing.T) {
	e := NewEvaluator(testDeliveryFee)

	// 1.5% of 99 is 1.485, rounds to 1
	result := e.Evaluate(activePromo(domain.PromotionPercentage, 1.5), 99)
	assert.Equal(t, int64(1), result.Amount)

	// 2.5% of 100 is 2.5, rounds to 3 (round half away from zero)
	result = e.Evaluate(activePromo(domain.PromotionPercentage, 2.5), 100)
	assert.Equal(t, int64(3), result.Amount)
}

func Test_FinalAmount_NeverNegative(t *testing.T) {
	assert.Equal(t, int64(0), FinalAmount(50000, 80000))
	assert.Equal(t, int64(0), FinalAmount(50000, 50000))
	assert.Equal(t, int64(20000), FinalAmount(50000, 30000))
	assert.Equal(t, int64(50000), FinalAmount(50000, 0))
}
