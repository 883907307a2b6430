// Package pricing computes effective room prices. It is pure: the same
// functions back both the listing view and the charge fixed at order
// creation, so displayed and charged amounts cannot drift.
package pricing

import (
	"fmt"
	"math"
)

type DiscountType string

const (
	DiscountFixed      DiscountType = "Fixed"
	DiscountPercentage DiscountType = "Percentage"
)

// Discount is the reduction applied to a plan price.
type Discount struct {
	Type  DiscountType
	Value float64
}

// EffectivePrice applies the discount to a plan price expressed in the
// currency's smallest unit. A nil discount is the identity. The result is
// never negative.
//
// Percentage amounts use round half up, matching how the catalog renders
// prices to students.
func EffectivePrice(planPrice int64, discount *Discount) int64 {
	if planPrice < 0 {
		panic(fmt.Sprintf("pricing: negative plan price %d", planPrice))
	}
	if discount == nil {
		return planPrice
	}

	switch discount.Type {
	case DiscountFixed:
		reduced := roundHalfUp(float64(planPrice) - discount.Value)
		if reduced < 0 {
			return 0
		}
		return reduced
	case DiscountPercentage:
		reduced := roundHalfUp(float64(planPrice) - float64(planPrice)*discount.Value/100)
		if reduced < 0 {
			return 0
		}
		if reduced > planPrice {
			return planPrice
		}
		return reduced
	default:
		// Discount types are validated at creation time. Reaching this
		// branch means corrupted config, not user input.
		panic(fmt.Sprintf("pricing: unknown discount type %q", discount.Type))
	}
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
