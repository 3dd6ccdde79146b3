package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}

	if NewLimiter(0, 1) != nil {
		t.Error("expected nil limiter for zero rate")
	}
}

func TestLimiter_Nil(t *testing.T) {
	var limiter *Limiter

	if err := limiter.Wait(context.Background(), "Fe-O"); err != nil {
		t.Errorf("nil limiter should not fail: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := limiter.Wait(ctx, "Fe-O"); err == nil {
		t.Error("expected context error from nil limiter on cancelled context")
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1) // 100 rps, burst 1
	ctx := context.Background()

	if err := limiter.Wait(ctx, "Fe-O"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// Different system should also work
	if err := limiter.Wait(ctx, "Cl-Na"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_RateLimit(t *testing.T) {
	// 1 rps, burst 1
	limiter := NewLimiter(1, 1)

	if err := limiter.Wait(context.Background(), "Fe-O"); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	// burst 1 means the token is consumed; the next one is a second away
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	start := time.Now()
	if err := limiter.Wait(ctx, "Fe-O"); err == nil {
		t.Error("expected wait to fail before the deadline")
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("wait should give up early when the deadline is too close")
	}

	// other systems have their own bucket
	if err := limiter.Wait(ctx, "Cl-Na"); err != nil {
		t.Errorf("expected other system to pass: %v", err)
	}
}

func TestSystemKey(t *testing.T) {
	tests := map[string]string{
		"Fe3O4":     "Fe-O",
		"O4Fe3":     "Fe-O",
		"NaCl":      "Cl-Na",
		"Ca(CO3)":   "C-Ca-O",
		" Fe ":      "Fe",
		"not valid": "not valid",
	}
	for in, want := range tests {
		if got := SystemKey(in); got != want {
			t.Errorf("SystemKey(%q) = %q, want %q", in, got, want)
		}
	}
}
