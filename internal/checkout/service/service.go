package service

import (
	"context"
	"strings"

	"github.com/Sabyy027/hostel-core/internal/checkout/domain"
	"github.com/Sabyy027/hostel-core/internal/clock"
	"github.com/Sabyy027/hostel-core/internal/config"
	gatewaydomain "github.com/Sabyy027/hostel-core/internal/gateway/domain"
	"github.com/Sabyy027/hostel-core/internal/observability/metrics"
	"github.com/Sabyy027/hostel-core/internal/ratelimit"
	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB          *gorm.DB
	Log         *zap.Logger
	GenID       *snowflake.Node
	Clock       clock.Clock
	Gateway     gatewaydomain.Client
	Repo        domain.Repository
	Registry    *domain.Registry
	CheckoutCfg *config.CheckoutConfigHolder
	Limiter     *ratelimit.CheckoutLimiter `optional:"true"`
	Metrics     *metrics.Metrics           `optional:"true"`
}

type Service struct {
	db          *gorm.DB
	log         *zap.Logger
	genID       *snowflake.Node
	clock       clock.Clock
	gateway     gatewaydomain.Client
	repo        domain.Repository
	registry    *domain.Registry
	checkoutCfg *config.CheckoutConfigHolder
	limiter     *ratelimit.CheckoutLimiter
	metrics     *metrics.Metrics
}

func NewService(p Params) *Service {
	return &Service{
		db:          p.DB,
		log:         p.Log.Named("checkout.service"),
		genID:       p.GenID,
		clock:       p.Clock,
		gateway:     p.Gateway,
		repo:        p.Repo,
		registry:    p.Registry,
		checkoutCfg: p.CheckoutCfg,
		limiter:     p.Limiter,
		metrics:     p.Metrics,
	}
}

type CreateOrderRequest struct {
	StudentID snowflake.ID
	Subject   domain.SubjectType
	TargetID  snowflake.ID
	PlanID    *snowflake.ID
}

// OrderIntent is what the client hands to the payment widget.
type OrderIntent struct {
	GatewayOrderID string `json:"order_id"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
	Receipt        string `json:"receipt"`
}

// CreateOrder recomputes the charge server-side and opens a gateway order
// for it. This is the one point where the amount is fixed for the flow
// instance; a retry after failure comes back through here for a fresh
// order.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*OrderIntent, error) {
	subject, ok := s.registry.Get(req.Subject)
	if !ok {
		return nil, domain.ErrUnknownSubject
	}

	if !s.limiter.AllowCreateOrder(ctx, req.StudentID.String()) {
		return nil, domain.ErrRateLimited
	}

	quote, err := subject.Quote(ctx, s.db, domain.QuoteRequest{
		StudentID: req.StudentID,
		TargetID:  req.TargetID,
		PlanID:    req.PlanID,
	})
	if err != nil {
		return nil, err
	}

	cfg := s.checkoutCfg.Get()
	currency := strings.TrimSpace(quote.Currency)
	if currency == "" {
		currency = cfg.DefaultCurrency
	}

	receipt := ulid.Make().String()
	gwOrder, err := s.gateway.CreateOrder(ctx, quote.Amount, currency, receipt)
	if err != nil {
		// A timeout here is retryable: no local order exists yet, so the
		// caller simply tries again.
		return nil, err
	}

	now := s.clock.Now().UTC()
	order := &domain.Order{
		ID:             s.genID.Generate(),
		StudentID:      req.StudentID,
		Subject:        req.Subject,
		TargetID:       req.TargetID,
		PlanID:         req.PlanID,
		Amount:         quote.Amount,
		Currency:       currency,
		Receipt:        receipt,
		GatewayOrderID: gwOrder.ID,
		Status:         domain.OrderStatusCreated,
		ExpiresAt:      now.Add(cfg.OrderTTL),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.InsertOrder(ctx, s.db, order); err != nil {
		return nil, err
	}

	s.metrics.RecordOrderCreated(string(req.Subject))
	s.log.Info("order created",
		zap.String("gateway_order_id", gwOrder.ID),
		zap.String("subject", string(req.Subject)),
		zap.Int64("amount", quote.Amount),
		zap.String("currency", currency),
	)

	return &OrderIntent{
		GatewayOrderID: gwOrder.ID,
		Amount:         quote.Amount,
		Currency:       currency,
		Receipt:        receipt,
	}, nil
}
