package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectivePriceNoDiscount(t *testing.T) {
	assert.Equal(t, int64(50000), EffectivePrice(50000, nil))
	assert.Equal(t, int64(0), EffectivePrice(0, nil))
}

func TestEffectivePriceFixed(t *testing.T) {
	cases := []struct {
		name  string
		price int64
		value float64
		want  int64
	}{
		{"plain subtraction", 50000, 5000, 45000},
		{"value equals price", 50000, 50000, 0},
		{"value exceeds price clamps to zero", 1000, 2500, 0},
		{"zero value is identity", 1200, 0, 1200},
		{"fractional value rounds half up", 1000, 0.5, 1000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EffectivePrice(tc.price, &Discount{Type: DiscountFixed, Value: tc.value})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEffectivePricePercentage(t *testing.T) {
	cases := []struct {
		name  string
		price int64
		value float64
		want  int64
	}{
		{"ten percent off 50000", 50000, 10, 45000},
		{"zero percent is identity", 50000, 0, 50000},
		{"hundred percent is free", 50000, 100, 0},
		{"half unit rounds up", 1005, 50, 503},
		{"fractional percent", 999, 5, 949},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EffectivePrice(tc.price, &Discount{Type: DiscountPercentage, Value: tc.value})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestEffectivePricePercentageStaysInBounds(t *testing.T) {
	prices := []int64{0, 1, 7, 999, 50000, 123457}
	values := []float64{0, 0.1, 12.5, 33.33, 50, 99.9, 100}

	for _, price := range prices {
		for _, value := range values {
			got := EffectivePrice(price, &Discount{Type: DiscountPercentage, Value: value})
			require.GreaterOrEqual(t, got, int64(0))
			require.LessOrEqual(t, got, price)
		}
	}
}

func TestEffectivePricePanicsOnUnknownType(t *testing.T) {
	assert.Panics(t, func() {
		EffectivePrice(100, &Discount{Type: "BuyOneGetOne", Value: 10})
	})
}

func TestEffectivePricePanicsOnNegativePrice(t *testing.T) {
	assert.Panics(t, func() {
		EffectivePrice(-1, nil)
	})
}
