package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCheckoutConfig(t *testing.T) {
	cfg := DefaultCheckoutConfig()

	assert.Equal(t, 30*time.Minute, cfg.OrderTTL)
	assert.Equal(t, 15*time.Second, cfg.GatewayTimeout)
	assert.Equal(t, 5*time.Minute, cfg.SweepInterval)
	assert.Equal(t, "INR", cfg.DefaultCurrency)
	require.NoError(t, validateCheckoutConfig(cfg))
}

func TestValidateCheckoutConfig(t *testing.T) {
	base := DefaultCheckoutConfig()

	cfg := base
	cfg.OrderTTL = 0
	assert.Error(t, validateCheckoutConfig(cfg))

	cfg = base
	cfg.GatewayTimeout = -time.Second
	assert.Error(t, validateCheckoutConfig(cfg))

	cfg = base
	cfg.SweepInterval = 0
	assert.Error(t, validateCheckoutConfig(cfg))

	cfg = base
	cfg.DefaultCurrency = "  "
	assert.Error(t, validateCheckoutConfig(cfg))
}

func TestStaticHolderServesPinnedConfig(t *testing.T) {
	want := CheckoutConfig{
		OrderTTL:        10 * time.Minute,
		GatewayTimeout:  5 * time.Second,
		SweepInterval:   time.Minute,
		DefaultCurrency: "INR",
	}

	holder := NewStaticCheckoutConfigHolder(want)
	assert.Equal(t, want, holder.Get())
}
