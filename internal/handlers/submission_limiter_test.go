package handlers

import (
	"testing"
	"time"
)

func TestGuestSubmissionLimiterWindow(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	limiter := newGuestSubmissionLimiter(2, time.Minute, func() time.Time { return now })

	if !limiter.Allow("203.0.113.7") || !limiter.Allow("203.0.113.7") {
		t.Fatal("expected first two submissions to pass")
	}
	if limiter.Allow("203.0.113.7") {
		t.Fatal("expected third submission inside the window to be rejected")
	}
	if !limiter.Allow("198.51.100.4") {
		t.Fatal("expected a different guest address to have its own window")
	}

	now = now.Add(61 * time.Second)
	if !limiter.Allow("203.0.113.7") {
		t.Fatal("expected the window to reset after it elapses")
	}
}

func TestGuestSubmissionLimiterEmptyKey(t *testing.T) {
	now := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	limiter := newGuestSubmissionLimiter(1, time.Minute, func() time.Time { return now })

	if !limiter.Allow("") {
		t.Fatal("expected the first anonymous submission to pass")
	}
	if limiter.Allow("  ") {
		t.Fatal("expected blank keys to share the anonymous window")
	}
}

func TestNewGuestSubmissionLimiterDisabled(t *testing.T) {
	if limiter := newGuestSubmissionLimiter(0, time.Minute, nil); limiter != nil {
		t.Fatalf("expected nil limiter for zero allowance")
	}
	if limiter := newGuestSubmissionLimiter(5, 0, nil); limiter != nil {
		t.Fatalf("expected nil limiter for zero window")
	}
}
