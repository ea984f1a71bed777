package circuit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Payphone-Digital/carrental/pkg/logger"
	"go.uber.org/zap"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

var errDown = errors.New("connection refused")

func newTestBreaker() (*Breaker, *clock) {
	logger.SetLogger(zap.NewNop())
	clk := &clock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	b := NewBreaker("redis", Config{
		Threshold:        3,
		Cooldown:         time.Minute,
		SuccessThreshold: 2,
		MaxProbes:        1,
	}).WithClock(clk.now)
	return b, clk
}

func fail() error    { return errDown }
func succeed() error { return nil }

func TestBreaker_OpensAfterThreshold(t *testing.T) {
	b, _ := newTestBreaker()

	for i := 0; i < 2; i++ {
		if err := b.Execute(fail); !errors.Is(err, errDown) {
			t.Fatalf("Expected guarded error, got %v", err)
		}
	}
	if b.State() != StateClosed {
		t.Fatalf("Expected CLOSED below threshold, got %s", b.State())
	}

	_ = b.Execute(fail)
	if b.State() != StateOpen {
		t.Fatalf("Expected OPEN at threshold, got %s", b.State())
	}

	called := false
	err := b.Execute(func() error { called = true; return nil })
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Errorf("Expected fast rejection, got %v (called=%v)", err, called)
	}
	if !IsRejected(err) {
		t.Error("IsRejected() = false for ErrCircuitOpen")
	}
}

func TestBreaker_SuccessResetsFailures(t *testing.T) {
	b, _ := newTestBreaker()

	_ = b.Execute(fail)
	_ = b.Execute(fail)
	_ = b.Execute(succeed)
	_ = b.Execute(fail)
	_ = b.Execute(fail)

	if b.State() != StateClosed {
		t.Errorf("Expected CLOSED, failures are consecutive only; got %s", b.State())
	}
}

func TestBreaker_HalfOpen(t *testing.T) {
	tests := []struct {
		name   string
		probes []func() error
		want   State
	}{
		{"probes succeed", []func() error{succeed, succeed}, StateClosed},
		{"one probe succeeds", []func() error{succeed}, StateHalfOpen},
		{"probe fails", []func() error{fail}, StateOpen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, clk := newTestBreaker()
			for i := 0; i < 3; i++ {
				_ = b.Execute(fail)
			}

			clk.advance(59 * time.Second)
			if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
				t.Fatalf("Expected still open before cool-down, got %v", err)
			}

			clk.advance(time.Second)
			for _, probe := range tt.probes {
				if err := b.Execute(probe); IsRejected(err) {
					t.Fatalf("Probe rejected: %v", err)
				}
			}

			if got := b.State(); got != tt.want {
				t.Errorf("State() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestBreaker_LimitsConcurrentProbes(t *testing.T) {
	b, clk := newTestBreaker()
	for i := 0; i < 3; i++ {
		_ = b.Execute(fail)
	}
	clk.advance(time.Minute)

	if err := b.Allow(); err != nil {
		t.Fatalf("Expected first probe admitted, got %v", err)
	}
	if err := b.Allow(); !errors.Is(err, ErrTooManyRequests) {
		t.Errorf("Expected ErrTooManyRequests, got %v", err)
	}

	b.Record(nil)
	if err := b.Allow(); err != nil {
		t.Errorf("Expected probe slot after record, got %v", err)
	}
}

func TestBreaker_IgnoresCancellation(t *testing.T) {
	b, _ := newTestBreaker()

	for i := 0; i < 5; i++ {
		_ = b.Execute(func() error { return context.Canceled })
	}

	if b.State() != StateClosed {
		t.Errorf("Expected CLOSED, got %s", b.State())
	}
}

func TestBreaker_ResetAndStats(t *testing.T) {
	b, _ := newTestBreaker()
	for i := 0; i < 3; i++ {
		_ = b.Execute(fail)
	}

	stats := b.Stats()
	if stats["state"] != "OPEN" || stats["name"] != "redis" {
		t.Errorf("Unexpected stats %v", stats)
	}

	b.Reset()
	if b.State() != StateClosed {
		t.Errorf("Expected CLOSED after reset, got %s", b.State())
	}
}
