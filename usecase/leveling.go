package usecase

import (
	"context"
	"time"

	"main/config"
	"main/model"
)

// Per-category XP bounds; evaluator output outside this range is clamped,
// never rejected.
const (
	minXPAward = 10
	maxXPAward = 100
)

// LevelingService is the XP ledger: it applies bounded per-category XP
// deltas and recomputes levels from the configured curve. Application is
// pure addition, so interleaved awards from different engines commute.
type LevelingService struct {
	store   ProgressStore
	levels  *config.LevelThresholds
	now     func() time.Time
	onAward func(category string, amount int)
}

func NewLevelingService(store ProgressStore, levels *config.LevelThresholds) *LevelingService {
	return &LevelingService{store: store, levels: levels, now: time.Now}
}

// NotifyAward registers a callback invoked once per clamped category award,
// used to feed the award counter without tying the engine to the metrics
// registry.
func (svc *LevelingService) NotifyAward(fn func(category string, amount int)) {
	svc.onAward = fn
}

// ClampXP bounds a single award value to [minXPAward, maxXPAward].
func ClampXP(v int) int {
	if v < minXPAward {
		return minXPAward
	}
	if v > maxXPAward {
		return maxXPAward
	}
	return v
}

// Apply folds the category XP deltas into the aggregate in place. Engines
// call this inside their own read-modify-write so the award lands in the
// same CAS write as the completion record it pays for.
func (svc *LevelingService) Apply(p *model.UserProgress, categoryXP map[string]int) {
	if p.Categories == nil {
		p.Categories = make(map[string]model.CategoryProgress)
	}
	for category, raw := range categoryXP {
		award := ClampXP(raw)
		if svc.onAward != nil {
			svc.onAward(category, award)
		}

		cp := p.Categories[category]
		cp.XP += award
		cp.Level = svc.levels.LevelFor(cp.XP)
		p.Categories[category] = cp

		p.Overall.XP += award
	}
	p.Overall.Level = svc.levels.LevelFor(p.Overall.XP)
}

// Award runs Apply as a standalone read-modify-write, for grants that are
// not tied to a completion record (e.g. the habit establishment bonus when
// triggered administratively).
func (svc *LevelingService) Award(ctx context.Context, userID string, categoryXP map[string]int) (*model.UserProgress, error) {
	return withProgress(ctx, svc.store, userID, svc.now, func(p *model.UserProgress) error {
		svc.Apply(p, categoryXP)
		return nil
	})
}
