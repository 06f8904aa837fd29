package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_DefaultBurst(t *testing.T) {
	if l := NewLimiter(10, -1); l.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l.defaultBurst)
	}
	if l := NewLimiter(10, 3); l.defaultBurst != 3 {
		t.Errorf("expected burst 3, got %d", l.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "http://example.com/a"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	if err := limiter.Wait(ctx, "http://other.example.org/b"); err != nil {
		t.Errorf("wait failed for second domain: %v", err)
	}
}

func TestLimiter_ThrottlesPerDomain(t *testing.T) {
	limiter := NewLimiter(10, 1) // 10 rps, burst 1
	ctx := context.Background()
	url := "http://example.com/feed"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	start := time.Now()
	if err := limiter.Wait(ctx, url); err != nil {
		t.Fatalf("second wait failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected second request throttled by ~100ms, waited %v", elapsed)
	}
}

func TestLimiter_AllowAfterBurst(t *testing.T) {
	limiter := NewLimiter(1, 1)
	url := "http://example.com"

	if !limiter.Allow(url) {
		t.Error("expected first request within burst to be allowed")
	}
	if limiter.Allow(url) {
		t.Error("expected second immediate request to be throttled")
	}
}

func TestLimiter_InvalidURL(t *testing.T) {
	limiter := NewLimiter(1, 1)

	if err := limiter.Wait(context.Background(), "://bad"); err == nil {
		t.Error("expected error for unparseable URL")
	}
}
