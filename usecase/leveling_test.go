package usecase

import (
	"context"
	"testing"
	"time"

	"main/model"
)

func TestClampXP(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-50, 10},
		{0, 10},
		{10, 10},
		{55, 55},
		{100, 100},
		{101, 100},
		{10000, 100},
	}
	for _, tt := range tests {
		if got := ClampXP(tt.in); got != tt.want {
			t.Errorf("ClampXP(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestLevelingApply(t *testing.T) {
	store := newMemoryStore()
	svc := testLeveling(store)

	p := model.NewUserProgress("user-1", time.Now())

	// Thresholds: 100, 250, 450, 700, 1000.
	svc.Apply(p, map[string]int{"fitness": 60, "learning": 60})
	if p.Categories["fitness"].Level != 1 || p.Overall.XP != 120 {
		t.Errorf("After first apply: fitness level=%d overall=%d", p.Categories["fitness"].Level, p.Overall.XP)
	}
	if p.Overall.Level != 2 {
		t.Errorf("Overall should reach level 2 at 120 XP, got %d", p.Overall.Level)
	}

	svc.Apply(p, map[string]int{"fitness": 60})
	if p.Categories["fitness"].Level != 2 {
		t.Errorf("Fitness should reach level 2 at 120 XP, got %d", p.Categories["fitness"].Level)
	}

	// Prestige is not leveling's concern.
	if p.Overall.Prestige != 0 {
		t.Errorf("Prestige must be untouched, got %d", p.Overall.Prestige)
	}
}

func TestNotifyAwardReportsClampedValues(t *testing.T) {
	store := newMemoryStore()
	svc := testLeveling(store)

	awarded := make(map[string]int)
	svc.NotifyAward(func(category string, amount int) {
		awarded[category] += amount
	})

	p := model.NewUserProgress("user-1", time.Now())
	svc.Apply(p, map[string]int{"fitness": 500, "learning": 3})
	svc.Apply(p, map[string]int{"fitness": 60})

	if awarded["fitness"] != 160 {
		t.Errorf("fitness awards = %d, want 160 (clamped 100 + 60)", awarded["fitness"])
	}
	if awarded["learning"] != 10 {
		t.Errorf("learning awards = %d, want 10 (clamped floor)", awarded["learning"])
	}
}

func TestStandaloneAward(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := testLeveling(store)
	svc.now = newFakeClock(time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)).Now

	progress, err := svc.Award(ctx, "user-1", map[string]int{"finance": 500})
	if err != nil {
		t.Fatalf("Award failed: %v", err)
	}
	if progress.Categories["finance"].XP != 100 {
		t.Errorf("Award must clamp, got %d", progress.Categories["finance"].XP)
	}

	stored, _ := store.Get(ctx, "user-1")
	if stored.Categories["finance"].XP != 100 {
		t.Errorf("Award must persist, got %d", stored.Categories["finance"].XP)
	}
}
