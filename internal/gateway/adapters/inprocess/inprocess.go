package inprocess

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/Sabyy027/hostel-core/internal/gateway/domain"
	"github.com/oklog/ulid/v2"
)

// Gateway is a local stand-in for the hosted gateway, used in development
// and tests. It mints order ids and signs payments with the same HMAC
// scheme as the real adapter, so verification code paths are identical.
type Gateway struct {
	secret string

	mu      sync.Mutex
	entropy *rand.Rand
}

func New(secret string) *Gateway {
	secret = strings.TrimSpace(secret)
	if secret == "" {
		secret = "inprocess_dev_secret"
	}
	return &Gateway{
		secret:  secret,
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (g *Gateway) CreateOrder(_ context.Context, amount int64, currency, receipt string) (*domain.Order, error) {
	g.mu.Lock()
	id := ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
	g.mu.Unlock()

	return &domain.Order{
		ID:       "order_" + id.String(),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	}, nil
}

func (g *Gateway) VerifySignature(orderID, paymentID, signature string) bool {
	return domain.VerifySignature(g.secret, orderID, paymentID, signature)
}

// SignPayment produces the signature the widget would return on success.
// Exposed for tests and the dev flow.
func (g *Gateway) SignPayment(orderID, paymentID string) string {
	return domain.Sign(g.secret, orderID, paymentID)
}
