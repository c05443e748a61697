package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRateLimiterSpacing(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	var slept []time.Duration

	rl := NewRateLimiter(2 * time.Second)
	rl.now = func() time.Time { return now }
	rl.sleep = func(ctx context.Context, d time.Duration) error {
		slept = append(slept, d)
		now = now.Add(d)
		return nil
	}

	ctx := context.Background()

	// First caller goes straight through.
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("First wait failed: %v", err)
	}
	if len(slept) != 0 {
		t.Errorf("First caller should not sleep, slept %v", slept)
	}

	// An immediate second caller waits the full interval.
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("Second wait failed: %v", err)
	}
	if len(slept) != 1 || slept[0] != 2*time.Second {
		t.Errorf("Expected one 2s sleep, got %v", slept)
	}

	// A caller arriving after the interval has passed does not wait.
	now = now.Add(5 * time.Second)
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("Third wait failed: %v", err)
	}
	if len(slept) != 1 {
		t.Errorf("Late caller should not sleep, got %v", slept)
	}

	// A caller arriving halfway waits the remainder.
	now = now.Add(1 * time.Second)
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("Fourth wait failed: %v", err)
	}
	if len(slept) != 2 || slept[1] != 1*time.Second {
		t.Errorf("Expected a 1s remainder sleep, got %v", slept)
	}
}

func TestRateLimiterCancellation(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	rl := NewRateLimiter(time.Minute)
	rl.now = func() time.Time { return now }

	ctx, cancel := context.WithCancel(context.Background())
	if err := rl.Wait(ctx); err != nil {
		t.Fatalf("First wait failed: %v", err)
	}

	cancel()
	if err := rl.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestRateLimiterZeroInterval(t *testing.T) {
	rl := NewRateLimiter(0)
	rl.sleep = func(ctx context.Context, d time.Duration) error {
		t.Errorf("Zero interval must never sleep, asked for %v", d)
		return nil
	}
	for i := 0; i < 5; i++ {
		if err := rl.Wait(context.Background()); err != nil {
			t.Fatalf("Wait failed: %v", err)
		}
	}
}
