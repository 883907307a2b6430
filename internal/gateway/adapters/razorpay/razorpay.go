package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Sabyy027/hostel-core/internal/gateway/domain"
	"github.com/Sabyy027/hostel-core/internal/observability/metrics"
	"go.uber.org/zap"
)

type Config struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	// Timeout is read per call so hot config reloads take effect without
	// rebuilding the adapter.
	Timeout func() time.Duration
}

// Adapter talks to the hosted Razorpay orders API.
type Adapter struct {
	cfg     Config
	log     *zap.Logger
	client  *http.Client
	metrics *metrics.Metrics
}

func New(cfg Config, log *zap.Logger, m *metrics.Metrics) (*Adapter, error) {
	cfg.KeyID = strings.TrimSpace(cfg.KeyID)
	cfg.KeySecret = strings.TrimSpace(cfg.KeySecret)
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, errors.New("razorpay: missing key credentials")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.razorpay.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	return &Adapter{
		cfg:     cfg,
		log:     log.Named("gateway.razorpay"),
		client:  &http.Client{},
		metrics: m,
	}, nil
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

func (a *Adapter) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*domain.Order, error) {
	body, err := json.Marshal(orderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return nil, err
	}

	timeout := 15 * time.Second
	if a.cfg.Timeout != nil {
		if t := a.cfg.Timeout(); t > 0 {
			timeout = t
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.BaseURL+"/v1/orders", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(a.cfg.KeyID, a.cfg.KeySecret)

	started := time.Now()
	resp, err := a.client.Do(req)
	a.metrics.ObserveGatewayCall("create_order", outcomeOf(err), time.Since(started).Seconds())
	if err != nil {
		if isTimeout(err) {
			a.log.Warn("order creation timed out", zap.String("receipt", receipt))
			return nil, domain.ErrGatewayTimeout
		}
		a.log.Warn("order creation failed", zap.String("receipt", receipt), zap.Error(err))
		return nil, domain.ErrGatewayUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		a.log.Warn("gateway rejected order",
			zap.String("receipt", receipt),
			zap.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("%w: status %d", domain.ErrGatewayUnavailable, resp.StatusCode)
	}

	var parsed orderResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	if strings.TrimSpace(parsed.ID) == "" {
		return nil, domain.ErrGatewayUnavailable
	}

	return &domain.Order{
		ID:       parsed.ID,
		Amount:   parsed.Amount,
		Currency: parsed.Currency,
		Receipt:  parsed.Receipt,
	}, nil
}

func (a *Adapter) VerifySignature(orderID, paymentID, signature string) bool {
	return domain.VerifySignature(a.cfg.KeySecret, orderID, paymentID, signature)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case isTimeout(err):
		return "timeout"
	default:
		return "error"
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
