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
}

func TestLimiter_Unlimited(t *testing.T) {
	limiter := NewLimiter(0, 1)
	for i := 0; i < 100; i++ {
		if !limiter.Allow("/export/non_cc_assessments/a.xml.qti") {
			t.Fatalf("expected unlimited reads, denied at %d", i)
		}
	}
}

func TestLimiter_PerDirectory(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if err := limiter.Wait(context.Background(), "/one/a.xml.qti"); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Burst of 1 is consumed for this directory
	if limiter.Allow("/one/b.xml.qti") {
		t.Error("expected allow to fail for exhausted directory")
	}

	if !limiter.Allow("/two/a.xml.qti") {
		t.Error("expected allow for a different directory")
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	path := "/slow/a.xml.qti"
	_ = limiter.Allow(path)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := limiter.Wait(ctx, path); err == nil {
		t.Error("expected error when the context expires before a token is available")
	}
}
