package payment

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/neupane-rajan/airline-reservation/internal/domain"
)

type Card struct {
	Number     string
	ExpiryDate string
	CVV        string
}

type ChargeResult struct {
	Status    domain.PaymentStatus
	PaymentID string
	Message   string
}

// Gateway mediates charges and refunds. A failed validation or a declined
// charge is a ChargeResult with status FAILED, not an error; errors are
// reserved for faults in the gateway itself.
type Gateway interface {
	Charge(ctx context.Context, amountCents int64, card Card) (ChargeResult, error)
	Refund(ctx context.Context, paymentID string) error
}

// RandSource supplies the success roll so tests can force an outcome.
type RandSource interface {
	Float64() float64
}

// MockGateway simulates an external payment provider. Card validation
// short-circuits before the simulated call and never produces a payment id.
type MockGateway struct {
	rand        RandSource
	successRate float64
	timeout     time.Duration
	latency     time.Duration
}

type MockGatewayOption func(*MockGateway)

func WithRandSource(src RandSource) MockGatewayOption {
	return func(g *MockGateway) {
		g.rand = src
	}
}

// WithLatency overrides the simulated provider round trip.
func WithLatency(d time.Duration) MockGatewayOption {
	return func(g *MockGateway) {
		g.latency = d
	}
}

func NewMockGateway(successRate float64, timeout time.Duration, opts ...MockGatewayOption) *MockGateway {
	g := &MockGateway{
		rand:        rand.New(rand.NewSource(time.Now().UnixNano())),
		successRate: successRate,
		timeout:     timeout,
		latency:     10 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *MockGateway) Charge(ctx context.Context, amountCents int64, card Card) (ChargeResult, error) {
	if n := len(card.Number); n < 13 || n > 19 {
		return ChargeResult{Status: domain.PaymentStatusFailed, Message: "invalid card number"}, nil
	}
	if len(card.CVV) != 3 {
		return ChargeResult{Status: domain.PaymentStatusFailed, Message: "invalid cvv"}, nil
	}

	// The latency timer stands in for the provider round trip. If the
	// timeout or the caller's context expires first, the charge surfaces
	// as a failed payment instead of a hung request.
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	timer := time.NewTimer(g.latency)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ChargeResult{Status: domain.PaymentStatusFailed, Message: "payment provider unavailable"}, nil
	case <-timer.C:
	}

	if g.rand.Float64() < g.successRate {
		return ChargeResult{
			Status:    domain.PaymentStatusCompleted,
			PaymentID: newPaymentID(),
			Message:   "payment processed successfully",
		}, nil
	}
	return ChargeResult{Status: domain.PaymentStatusFailed, Message: "payment processing failed, please try again"}, nil
}

// Refund always succeeds against the mock provider.
func (g *MockGateway) Refund(ctx context.Context, paymentID string) error {
	return nil
}

func newPaymentID() string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "PAY-" + strings.ToUpper(hex[:12])
}

var _ Gateway = (*MockGateway)(nil)
