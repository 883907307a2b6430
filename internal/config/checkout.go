package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CheckoutConfig tunes the checkout protocol: how long an unverified order
// stays claimable, how long gateway round-trips may take, and the currency
// orders are created in.
type CheckoutConfig struct {
	OrderTTL        time.Duration `mapstructure:"orderTTL"`
	GatewayTimeout  time.Duration `mapstructure:"gatewayTimeout"`
	SweepInterval   time.Duration `mapstructure:"sweepInterval"`
	DefaultCurrency string        `mapstructure:"defaultCurrency"`
}

func DefaultCheckoutConfig() CheckoutConfig {
	return CheckoutConfig{
		OrderTTL:        30 * time.Minute,
		GatewayTimeout:  15 * time.Second,
		SweepInterval:   5 * time.Minute,
		DefaultCurrency: "INR",
	}
}

// CheckoutConfigHolder serves the current checkout config and hot-reloads it
// when the config file changes, so order TTLs can be tuned without a restart.
type CheckoutConfigHolder struct {
	current atomic.Value // holds CheckoutConfig
}

func NewCheckoutConfigHolder() (*CheckoutConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("checkout")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/hostel-core")
	v.AddConfigPath(".")

	v.SetEnvPrefix("HOSTEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultCheckoutConfig()
	v.SetDefault("checkout.orderTTL", defaults.OrderTTL)
	v.SetDefault("checkout.gatewayTimeout", defaults.GatewayTimeout)
	v.SetDefault("checkout.sweepInterval", defaults.SweepInterval)
	v.SetDefault("checkout.defaultCurrency", defaults.DefaultCurrency)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg CheckoutConfig
	if err := v.UnmarshalKey("checkout", &cfg); err != nil {
		return nil, err
	}
	if err := validateCheckoutConfig(cfg); err != nil {
		return nil, err
	}

	holder := &CheckoutConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CheckoutConfig
		if err := v.UnmarshalKey("checkout", &updated); err != nil {
			log.Printf("[checkout-config] reload failed: %v", err)
			return
		}
		if err := validateCheckoutConfig(updated); err != nil {
			log.Printf("[checkout-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[checkout-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticCheckoutConfigHolder returns a holder pinned to cfg, with no
// file watching. Used by tests and tooling.
func NewStaticCheckoutConfigHolder(cfg CheckoutConfig) *CheckoutConfigHolder {
	holder := &CheckoutConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *CheckoutConfigHolder) Get() CheckoutConfig {
	return h.current.Load().(CheckoutConfig)
}

func validateCheckoutConfig(cfg CheckoutConfig) error {
	if cfg.OrderTTL <= 0 {
		return errors.New("checkout.orderTTL must be positive")
	}
	if cfg.GatewayTimeout <= 0 {
		return errors.New("checkout.gatewayTimeout must be positive")
	}
	if cfg.SweepInterval <= 0 {
		return errors.New("checkout.sweepInterval must be positive")
	}
	if strings.TrimSpace(cfg.DefaultCurrency) == "" {
		return errors.New("checkout.defaultCurrency cannot be empty")
	}
	return nil
}
