package engine

import (
	"errors"
	"secaware_backend/internal/model"
	"testing"
	"time"
)

func newProgression(t *testing.T, day time.Time) (*ProgressionEngine, *model.UserProgress) {
	t.Helper()
	e := &ProgressionEngine{Now: fixedClock(day), Rules: DefaultBadgeRules}
	p := &model.UserProgress{}
	e.Reset(p)
	return e, p
}

var day1 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestAddXPSingleLevelCarry(t *testing.T) {
	e, p := newProgression(t, day1)

	if err := e.AddXP(p, 150); err != nil {
		t.Fatalf("AddXP: %v", err)
	}

	if p.Level != 2 {
		t.Errorf("Level = %d, want 2", p.Level)
	}
	if p.XP != 50 {
		t.Errorf("XP = %d, want 50", p.XP)
	}
	if p.XPToNextLevel != XPForLevel(2) {
		t.Errorf("XPToNextLevel = %d, want %d", p.XPToNextLevel, XPForLevel(2))
	}
	if p.TotalScore != 150 {
		t.Errorf("TotalScore = %d, want 150", p.TotalScore)
	}
}

func TestAddXPMultiLevelJump(t *testing.T) {
	e, p := newProgression(t, day1)

	// 100 + 200 + 300 = 600 to reach level 4; 650 leaves 50 spare.
	if err := e.AddXP(p, 650); err != nil {
		t.Fatalf("AddXP: %v", err)
	}

	if p.Level != 4 || p.XP != 50 {
		t.Errorf("level/xp = %d/%d, want 4/50", p.Level, p.XP)
	}
}

func TestAddXPMonotonic(t *testing.T) {
	e, p := newProgression(t, day1)

	prevLevel := p.Level
	for _, amount := range []int{0, 1, 99, 100, 250, 10000} {
		if err := e.AddXP(p, amount); err != nil {
			t.Fatalf("AddXP(%d): %v", amount, err)
		}
		if p.Level < prevLevel {
			t.Errorf("level decreased: %d -> %d", prevLevel, p.Level)
		}
		if p.XP >= p.XPToNextLevel {
			t.Errorf("xp %d did not settle below threshold %d", p.XP, p.XPToNextLevel)
		}
		prevLevel = p.Level
	}
}

func TestAddXPRejectsNegative(t *testing.T) {
	e, p := newProgression(t, day1)

	if err := e.AddXP(p, -1); !errors.Is(err, ErrNegativeXP) {
		t.Errorf("err = %v, want ErrNegativeXP", err)
	}
	if p.XP != 0 || p.TotalScore != 0 {
		t.Error("rejected call mutated state")
	}
}

func TestUpdateModuleProgressBestScoreAndStickyStatus(t *testing.T) {
	e, p := newProgression(t, day1)

	if _, err := e.UpdateModuleProgress(p, "m1", 90, true); err != nil {
		t.Fatalf("UpdateModuleProgress: %v", err)
	}
	if _, err := e.UpdateModuleProgress(p, "m1", 70, false); err != nil {
		t.Fatalf("UpdateModuleProgress: %v", err)
	}

	mp := p.ModuleProgress["m1"]
	if mp.BestScore != 90 {
		t.Errorf("BestScore = %d, want 90", mp.BestScore)
	}
	if mp.Status != model.StatusCompleted {
		t.Errorf("Status = %s, want completed (never regresses)", mp.Status)
	}
	if mp.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", mp.Attempts)
	}
	if mp.LastAttemptDate != "2026-03-01" {
		t.Errorf("LastAttemptDate = %q", mp.LastAttemptDate)
	}
}

func TestUpdateModuleProgressRejectsOutOfRangeScore(t *testing.T) {
	e, p := newProgression(t, day1)

	for _, score := range []int{-1, 101} {
		if _, err := e.UpdateModuleProgress(p, "m1", score, false); !errors.Is(err, ErrScoreOutOfRange) {
			t.Errorf("score %d: err = %v, want ErrScoreOutOfRange", score, err)
		}
	}
	if len(p.ModuleProgress) != 0 {
		t.Error("rejected call created a progress record")
	}
}

func TestAddBadgeDuplicate(t *testing.T) {
	e, p := newProgression(t, day1)

	badge := model.Badge{BadgeID: "first-defense", Name: "First Line of Defense"}
	if err := e.AddBadge(p, badge); err != nil {
		t.Fatalf("AddBadge: %v", err)
	}
	if err := e.AddBadge(p, badge); !errors.Is(err, ErrDuplicateBadge) {
		t.Errorf("second AddBadge err = %v, want ErrDuplicateBadge", err)
	}
	if len(p.Badges) != 1 {
		t.Errorf("len(Badges) = %d, want 1", len(p.Badges))
	}
	if !p.Badges[0].EarnedAt.Equal(day1) {
		t.Errorf("EarnedAt = %v, want grant time", p.Badges[0].EarnedAt)
	}
}

func TestUpdateStreak(t *testing.T) {
	e, p := newProgression(t, day1)

	e.UpdateStreak(p)
	if p.Streak != 1 {
		t.Fatalf("first activity: streak = %d, want 1", p.Streak)
	}

	// Same calendar day is idempotent.
	e.UpdateStreak(p)
	if p.Streak != 1 {
		t.Errorf("same-day repeat: streak = %d, want 1", p.Streak)
	}

	// Immediate next day increments by exactly one.
	e.Now = fixedClock(day1.AddDate(0, 0, 1))
	e.UpdateStreak(p)
	if p.Streak != 2 {
		t.Errorf("next day: streak = %d, want 2", p.Streak)
	}

	// A gap of two or more days resets to 1.
	e.Now = fixedClock(day1.AddDate(0, 0, 4))
	e.UpdateStreak(p)
	if p.Streak != 1 {
		t.Errorf("after gap: streak = %d, want 1", p.Streak)
	}
	if p.LastActiveDate != "2026-03-05" {
		t.Errorf("LastActiveDate = %q, want 2026-03-05", p.LastActiveDate)
	}
}

func TestResetProgress(t *testing.T) {
	e, p := newProgression(t, day1)

	e.AddXP(p, 500)
	e.UpdateStreak(p)
	e.UpdateModuleProgress(p, "m1", 95, true)

	e.Reset(p)

	if p.Level != 1 || p.XP != 0 || p.XPToNextLevel != XPForLevel(1) ||
		p.TotalScore != 0 || p.Streak != 0 || len(p.ModuleProgress) != 0 || len(p.Badges) != 0 {
		t.Errorf("Reset left residue: %+v", p)
	}
}

func TestBadgeRulesGrantOnCompletion(t *testing.T) {
	e, p := newProgression(t, day1)

	earned, err := e.UpdateModuleProgress(p, "phishing-basics", 95, true)
	if err != nil {
		t.Fatalf("UpdateModuleProgress: %v", err)
	}

	wantIDs := map[string]bool{"first-defense": true, "phish-whisperer": true}
	if len(earned) != len(wantIDs) {
		t.Fatalf("earned %d badges, want %d: %+v", len(earned), len(wantIDs), earned)
	}
	for _, b := range earned {
		if !wantIDs[b.BadgeID] {
			t.Errorf("unexpected badge %q", b.BadgeID)
		}
		if b.EarnedAt.IsZero() {
			t.Errorf("badge %q has no EarnedAt", b.BadgeID)
		}
	}
}

func TestBadgeRulesDoNotReaward(t *testing.T) {
	e, p := newProgression(t, day1)

	if _, err := e.UpdateModuleProgress(p, "phishing-basics", 95, true); err != nil {
		t.Fatal(err)
	}
	earned, err := e.UpdateModuleProgress(p, "phishing-basics", 100, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(earned) != 0 {
		t.Errorf("re-awarded badges: %+v", earned)
	}

	count := 0
	for _, b := range p.Badges {
		if b.BadgeID == "first-defense" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("first-defense held %d times, want 1", count)
	}
}

func TestBadgeRuleOrderIndependence(t *testing.T) {
	setup := func(rules []BadgeRule) *model.UserProgress {
		e := &ProgressionEngine{Now: fixedClock(day1), Rules: rules}
		p := &model.UserProgress{}
		e.Reset(p)
		p.Streak = 7
		if _, err := e.UpdateModuleProgress(p, "phishing-basics", 95, true); err != nil {
			t.Fatal(err)
		}
		return p
	}

	reversed := make([]BadgeRule, len(DefaultBadgeRules))
	for i, r := range DefaultBadgeRules {
		reversed[len(DefaultBadgeRules)-1-i] = r
	}

	forward := setup(DefaultBadgeRules)
	backward := setup(reversed)

	ids := func(p *model.UserProgress) map[string]bool {
		m := make(map[string]bool)
		for _, b := range p.Badges {
			m[b.BadgeID] = true
		}
		return m
	}

	fw, bw := ids(forward), ids(backward)
	if len(fw) != len(bw) {
		t.Fatalf("rule order changed the badge set: %v vs %v", fw, bw)
	}
	for id := range fw {
		if !bw[id] {
			t.Errorf("badge %q missing under reversed rule order", id)
		}
	}
}

func TestXPForLevelStrictlyIncreasing(t *testing.T) {
	for level := 1; level < 50; level++ {
		if XPForLevel(level+1) <= XPForLevel(level) {
			t.Fatalf("threshold not increasing at level %d", level)
		}
	}
}

func TestEvaluateBadgesDirectAndIdempotent(t *testing.T) {
	e, p := newProgression(t, day1)
	p.Streak = 7
	p.Level = 5

	earned := e.EvaluateBadges(p)
	wantIDs := map[string]bool{"week-vigilance": true, "analyst": true}
	if len(earned) != len(wantIDs) {
		t.Fatalf("earned %d badges, want %d: %+v", len(earned), len(wantIDs), earned)
	}
	for _, b := range earned {
		if !wantIDs[b.BadgeID] {
			t.Errorf("unexpected badge %q", b.BadgeID)
		}
	}

	if again := e.EvaluateBadges(p); len(again) != 0 {
		t.Errorf("second evaluation granted badges: %+v", again)
	}
}
