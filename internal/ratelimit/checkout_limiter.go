package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Sabyy027/hostel-core/internal/config"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyCheckoutStudent = "checkout:student:%s"
	keyVerifyLock      = "checkout:verify:lock:%s"

	checkoutRate  = 0.5
	checkoutBurst = 5
	verifyLockTTL = 30 * time.Second
)

// CheckoutLimiter throttles order creation per student and serializes
// concurrent verification attempts on the same order. All methods are
// nil-receiver safe: without redis the limiter allows everything and the
// database CAS remains the correctness backstop.
type CheckoutLimiter struct {
	bucket *TokenBucket
	locker *Locker
	log    *zap.Logger
}

func NewCheckoutLimiter(cfg config.Config, log *zap.Logger) *CheckoutLimiter {
	addr := strings.TrimSpace(cfg.RedisAddr)
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.RedisPassword,
	})

	return &CheckoutLimiter{
		bucket: NewTokenBucket(client),
		locker: NewLocker(client),
		log:    log.Named("ratelimit.checkout"),
	}
}

// AllowCreateOrder reports whether the student may create another order
// right now. Limiter errors fail open.
func (c *CheckoutLimiter) AllowCreateOrder(ctx context.Context, studentID string) bool {
	if c == nil {
		return true
	}
	res, err := c.bucket.Allow(ctx, fmt.Sprintf(keyCheckoutStudent, studentID), checkoutRate, checkoutBurst)
	if err != nil {
		c.log.Warn("rate limit check failed", zap.String("student_id", studentID), zap.Error(err))
		return true
	}
	return res.Allowed
}

// LockOrder takes a short lock keyed on the gateway order id so two
// concurrent verify calls for the same order are serialized. Returns a
// release func. Lock failures fail open.
func (c *CheckoutLimiter) LockOrder(ctx context.Context, gatewayOrderID string) (func(), bool) {
	if c == nil {
		return func() {}, true
	}
	key := fmt.Sprintf(keyVerifyLock, gatewayOrderID)
	token, ok, err := c.locker.TryLock(ctx, key, verifyLockTTL)
	if err != nil {
		c.log.Warn("verify lock failed", zap.String("order_id", gatewayOrderID), zap.Error(err))
		return func() {}, true
	}
	if !ok {
		return func() {}, false
	}
	return func() {
		if err := c.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
			c.log.Warn("verify lock release failed", zap.String("order_id", gatewayOrderID), zap.Error(err))
		}
	}, true
}
