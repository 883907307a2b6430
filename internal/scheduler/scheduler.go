package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	checkoutservice "github.com/Sabyy027/hostel-core/internal/checkout/service"
	"github.com/Sabyy027/hostel-core/internal/clock"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler requires a checkout service, clock and logger")

type Params struct {
	fx.In

	Log         *zap.Logger
	Clock       clock.Clock
	CheckoutSvc *checkoutservice.Service
	Config      Config `optional:"true"`
}

// Scheduler expires stale checkout orders on a fixed interval. Orders never
// hold rooms, so the sweep only closes verification windows; a payment
// arriving for a swept order is routed into reconciliation by the checkout
// service itself.
type Scheduler struct {
	log         *zap.Logger
	cfg         Config
	clock       clock.Clock
	checkoutSvc *checkoutservice.Service
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.CheckoutSvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:         p.Log.Named("scheduler").With(zap.String("component", "scheduler")),
		cfg:         p.Config.withDefaults(),
		clock:       p.Clock,
		checkoutSvc: p.CheckoutSvc,
	}, nil
}

func (s *Scheduler) runJob(parent context.Context, name string, timeout time.Duration, fn func(ctx context.Context) error) error {
	start := s.clock.Now()
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	err := fn(ctx)
	elapsed := time.Since(start)
	if err == nil {
		s.log.Debug("job finished",
			zap.String("job", name),
			zap.Duration("elapsed", elapsed),
		)
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		s.log.Warn("job timed out",
			zap.String("job", name),
			zap.Duration("timeout", timeout),
			zap.Error(err),
		)
		return nil
	}

	return fmt.Errorf("%s: %w", name, err)
}

func (s *Scheduler) RunOnce(parent context.Context) error {
	return s.runJob(parent, "expire_orders", s.cfg.JobTimeout, func(ctx context.Context) error {
		_, err := s.checkoutSvc.ExpireStaleOrders(ctx)
		return err
	})
}

func (s *Scheduler) RunForever(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.RunInterval)
	defer ticker.Stop()

	for {
		if err := s.RunOnce(ctx); err != nil {
			s.log.Warn("scheduler run failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
