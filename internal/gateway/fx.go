package gateway

import (
	"fmt"
	"time"

	"github.com/Sabyy027/hostel-core/internal/config"
	"github.com/Sabyy027/hostel-core/internal/gateway/adapters/inprocess"
	"github.com/Sabyy027/hostel-core/internal/gateway/adapters/razorpay"
	"github.com/Sabyy027/hostel-core/internal/gateway/domain"
	"github.com/Sabyy027/hostel-core/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("gateway",
	fx.Provide(ProvideClient),
)

// ProvideClient selects the gateway adapter from configuration.
func ProvideClient(cfg config.Config, checkoutCfg *config.CheckoutConfigHolder, log *zap.Logger, m *metrics.Metrics) (domain.Client, error) {
	switch cfg.GatewayProvider {
	case "razorpay":
		return razorpay.New(razorpay.Config{
			BaseURL:   cfg.GatewayBaseURL,
			KeyID:     cfg.GatewayKeyID,
			KeySecret: cfg.GatewayKeySecret,
			Timeout: func() time.Duration {
				return checkoutCfg.Get().GatewayTimeout
			},
		}, log, m)
	case "inprocess":
		return inprocess.New(cfg.GatewayKeySecret), nil
	default:
		return nil, fmt.Errorf("unsupported gateway provider %q", cfg.GatewayProvider)
	}
}
