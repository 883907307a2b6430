package razorpay

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Sabyy027/hostel-core/internal/gateway/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAdapter(t *testing.T, url string, timeout time.Duration) *Adapter {
	t.Helper()

	adapter, err := New(Config{
		BaseURL:   url,
		KeyID:     "rzp_test_key",
		KeySecret: "rzp_test_secret",
		Timeout:   func() time.Duration { return timeout },
	}, zap.NewNop(), nil)
	require.NoError(t, err)
	return adapter
}

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "rzp_test_key", user)
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/orders", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_abc","amount":45000,"currency":"INR","receipt":"rcpt_1","status":"created"}`))
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL, time.Second)
	order, err := adapter.CreateOrder(context.Background(), 45000, "INR", "rcpt_1")
	require.NoError(t, err)
	assert.Equal(t, "order_abc", order.ID)
	assert.Equal(t, int64(45000), order.Amount)
	assert.Equal(t, "INR", order.Currency)
}

func TestCreateOrderTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL, 50*time.Millisecond)
	_, err := adapter.CreateOrder(context.Background(), 45000, "INR", "rcpt_1")
	assert.ErrorIs(t, err, domain.ErrGatewayTimeout)
}

func TestCreateOrderGatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	adapter := newTestAdapter(t, srv.URL, time.Second)
	_, err := adapter.CreateOrder(context.Background(), 45000, "INR", "rcpt_1")
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestNewRequiresCredentials(t *testing.T) {
	_, err := New(Config{}, zap.NewNop(), nil)
	assert.Error(t, err)
}
