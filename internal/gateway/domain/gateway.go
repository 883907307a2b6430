package domain

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

var (
	// ErrGatewayTimeout means the round-trip did not complete. The order may
	// still exist gateway-side, so callers must treat this as retryable, not
	// as a failure.
	ErrGatewayTimeout     = errors.New("gateway_timeout")
	ErrGatewayUnavailable = errors.New("gateway_unavailable")
	ErrInvalidSignature   = errors.New("invalid_signature")
)

// Order mirrors a gateway-side order: an amount reserved to be charged.
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
}

// Client creates orders against the payment gateway and verifies the
// signatures it hands back through the payment widget.
type Client interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

// Sign computes the hex HMAC-SHA256 of "orderID|paymentID" under the
// gateway shared secret. This is the payload the gateway signs when a
// payment succeeds.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature recomputes the expected signature and compares in
// constant time.
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	expected := Sign(secret, orderID, paymentID)
	return hmac.Equal([]byte(signature), []byte(expected))
}
