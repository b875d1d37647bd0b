package engine

import (
	"secaware_backend/internal/model"
	"time"
)

// XPForLevel is the XP required to leave the given level. Each level costs
// 100 more than the last, so the curve is strictly increasing.
func XPForLevel(level int) int {
	if level < 1 {
		level = 1
	}
	return level * 100
}

// ProgressionEngine mutates one owned UserProgress state. Rule evaluation and
// all arithmetic are deterministic given the injected clock.
type ProgressionEngine struct {
	Now   func() time.Time
	Rules []BadgeRule
}

func NewProgressionEngine() *ProgressionEngine {
	return &ProgressionEngine{Now: time.Now, Rules: DefaultBadgeRules}
}

// AddXP credits xp and carries over level boundaries. A single large award can
// jump multiple levels; xp always settles below the next threshold. XP never
// decreases, so negative amounts are a caller bug.
func (e *ProgressionEngine) AddXP(p *model.UserProgress, amount int) error {
	if amount < 0 {
		return ErrNegativeXP
	}

	if p.Level < 1 {
		p.Level = 1
	}
	if p.XPToNextLevel <= 0 {
		p.XPToNextLevel = XPForLevel(p.Level)
	}

	p.XP += amount
	p.TotalScore += amount
	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = XPForLevel(p.Level)
	}
	return nil
}

// UpdateModuleProgress records an attempt outcome and re-evaluates badge
// rules. Completed status is sticky: a later failed attempt never regresses
// it. Returns the badges newly earned by this mutation.
func (e *ProgressionEngine) UpdateModuleProgress(p *model.UserProgress, moduleID string, score int, passed bool) ([]model.Badge, error) {
	if score < minScore || score > maxScore {
		return nil, ErrScoreOutOfRange
	}

	if p.ModuleProgress == nil {
		p.ModuleProgress = make(map[string]model.ModuleProgress)
	}

	mp := p.ModuleProgress[moduleID]
	if score > mp.BestScore {
		mp.BestScore = score
	}
	mp.Attempts++
	mp.LastAttemptDate = e.Now().Format("2006-01-02")
	if passed || mp.Status == model.StatusCompleted {
		mp.Status = model.StatusCompleted
	} else {
		mp.Status = model.StatusInProgress
	}
	p.ModuleProgress[moduleID] = mp

	return e.EvaluateBadges(p), nil
}

// AddBadge grants a badge once. Awarding the same id twice is reported as an
// error and leaves the collection unchanged.
func (e *ProgressionEngine) AddBadge(p *model.UserProgress, badge model.Badge) error {
	if p.HasBadge(badge.BadgeID) {
		return ErrDuplicateBadge
	}

	badge.EarnedAt = e.Now()
	p.Badges = append(p.Badges, badge)
	return nil
}

// UpdateStreak advances the consecutive-day counter. Same-day repeats are
// idempotent; a gap of two or more days resets to 1. lastActiveDate always
// moves to today.
func (e *ProgressionEngine) UpdateStreak(p *model.UserProgress) {
	today := e.Now().Format("2006-01-02")
	yesterday := e.Now().AddDate(0, 0, -1).Format("2006-01-02")

	switch p.LastActiveDate {
	case today:
		// already counted for today
	case yesterday:
		p.Streak++
	default:
		p.Streak = 1
	}
	p.LastActiveDate = today
}

// Reset returns the account to its level-1 starting state.
func (e *ProgressionEngine) Reset(p *model.UserProgress) {
	p.Level = 1
	p.XP = 0
	p.XPToNextLevel = XPForLevel(1)
	p.TotalScore = 0
	p.Streak = 0
	p.LastActiveDate = ""
	p.ModuleProgress = make(map[string]model.ModuleProgress)
	p.Badges = nil
}

// EvaluateBadges runs every rule against the current state and grants each
// newly satisfied, not-yet-held badge. Rules are independent: each predicate
// only reads the state, so check order does not matter.
func (e *ProgressionEngine) EvaluateBadges(p *model.UserProgress) []model.Badge {
	var earned []model.Badge
	for _, rule := range e.Rules {
		if p.HasBadge(rule.Badge.BadgeID) {
			continue
		}
		if !rule.Met(p) {
			continue
		}
		if err := e.AddBadge(p, rule.Badge); err == nil {
			earned = append(earned, p.Badges[len(p.Badges)-1])
		}
	}
	return earned
}
