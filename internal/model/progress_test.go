package model

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestUserProgressJSONRoundTrip(t *testing.T) {
	earned := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	original := UserProgress{
		UserID:         7,
		Level:          3,
		XP:             40,
		XPToNextLevel:  300,
		TotalScore:     640,
		Streak:         5,
		LastActiveDate: "2026-03-01",
		ModuleProgress: map[string]ModuleProgress{
			"phishing-basics": {BestScore: 95, Status: StatusCompleted, Attempts: 2, LastAttemptDate: "2026-03-01"},
			"incident-101":    {BestScore: 60, Status: StatusInProgress, Attempts: 1, LastAttemptDate: "2026-02-27"},
		},
		Badges: []Badge{
			{BadgeID: "first-defense", Name: "First Line of Defense", Rarity: RarityCommon, EarnedAt: earned},
			{BadgeID: "week-vigilance", Name: "Week of Vigilance", Rarity: RarityRare, EarnedAt: earned.Add(time.Hour)},
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored UserProgress
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(original.ModuleProgress, restored.ModuleProgress) {
		t.Errorf("moduleProgress changed across round trip:\n%+v\n%+v", original.ModuleProgress, restored.ModuleProgress)
	}
	if len(restored.Badges) != 2 {
		t.Fatalf("len(Badges) = %d, want 2", len(restored.Badges))
	}
	for i := range original.Badges {
		if original.Badges[i].BadgeID != restored.Badges[i].BadgeID {
			t.Errorf("badge order changed at %d", i)
		}
		if !original.Badges[i].EarnedAt.Equal(restored.Badges[i].EarnedAt) {
			t.Errorf("badge %d EarnedAt changed: %v vs %v", i, original.Badges[i].EarnedAt, restored.Badges[i].EarnedAt)
		}
	}
	if restored.UserID != original.UserID ||
		restored.Level != original.Level || restored.XP != original.XP ||
		restored.XPToNextLevel != original.XPToNextLevel ||
		restored.TotalScore != original.TotalScore ||
		restored.Streak != original.Streak ||
		restored.LastActiveDate != original.LastActiveDate {
		t.Errorf("scalar fields changed across round trip: %+v", restored)
	}
}

func TestScenarioGroundTruth(t *testing.T) {
	tests := []struct {
		name     string
		scenario Scenario
		want     bool
	}{
		{
			"phishing email",
			Scenario{Type: Phishing, Phishing: &PhishingScenario{Channel: ChannelEmail, Body: "x", IsPhishing: true}},
			true,
		},
		{
			"legitimate email",
			Scenario{Type: Phishing, Phishing: &PhishingScenario{Channel: ChannelEmail, Body: "x", IsPhishing: false}},
			false,
		},
		{
			"social engineering attack",
			Scenario{Type: SocialEngineering, SocialEngineering: &SocialEngineeringScenario{Opening: "x", IsAttack: true}},
			true,
		},
		{
			"correct incident action",
			Scenario{Type: IncidentResponse, IncidentResponse: &IncidentResponseScenario{Incident: "x", IsCorrectAction: true}},
			false,
		},
		{
			"weak password sample",
			Scenario{Type: PasswordSecurity, PasswordSecurity: &PasswordSecurityScenario{Sample: "hunter2", IsSecure: false}},
			true,
		},
		{
			"variant missing",
			Scenario{Type: Phishing},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scenario.GroundTruth(); got != tt.want {
				t.Errorf("GroundTruth() = %v, want %v", got, tt.want)
			}
		})
	}
}
