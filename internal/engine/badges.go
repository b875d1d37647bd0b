package engine

import "secaware_backend/internal/model"

// BadgeRule pairs a side-effect-free predicate with the badge it unlocks.
// Adding a rule never touches existing rules' code paths.
type BadgeRule struct {
	Badge model.Badge
	Met   func(p *model.UserProgress) bool
}

func completedAtLeast(n int) func(p *model.UserProgress) bool {
	return func(p *model.UserProgress) bool {
		return p.CompletedModules() >= n
	}
}

func streakAtLeast(n int) func(p *model.UserProgress) bool {
	return func(p *model.UserProgress) bool {
		return p.Streak >= n
	}
}

func levelAtLeast(n int) func(p *model.UserProgress) bool {
	return func(p *model.UserProgress) bool {
		return p.Level >= n
	}
}

func moduleScoreAtLeast(moduleID string, score int) func(p *model.UserProgress) bool {
	return func(p *model.UserProgress) bool {
		mp, ok := p.ModuleProgress[moduleID]
		return ok && mp.BestScore >= score
	}
}

// DefaultBadgeRules is the production rule set, evaluated after every
// progress mutation.
var DefaultBadgeRules = []BadgeRule{
	{
		Badge: model.Badge{
			BadgeID:     "first-defense",
			Name:        "First Line of Defense",
			Description: "Complete your first training module",
			Icon:        "shield",
			Requirement: "Complete 1 module",
			Rarity:      model.RarityCommon,
		},
		Met: completedAtLeast(1),
	},
	{
		Badge: model.Badge{
			BadgeID:     "human-firewall",
			Name:        "Human Firewall",
			Description: "Complete five training modules",
			Icon:        "flame",
			Requirement: "Complete 5 modules",
			Rarity:      model.RarityRare,
		},
		Met: completedAtLeast(5),
	},
	{
		Badge: model.Badge{
			BadgeID:     "week-vigilance",
			Name:        "Week of Vigilance",
			Description: "Train seven days in a row",
			Icon:        "calendar",
			Requirement: "7-day streak",
			Rarity:      model.RarityRare,
		},
		Met: streakAtLeast(7),
	},
	{
		Badge: model.Badge{
			BadgeID:     "iron-habit",
			Name:        "Iron Habit",
			Description: "Train thirty days in a row",
			Icon:        "medal",
			Requirement: "30-day streak",
			Rarity:      model.RarityEpic,
		},
		Met: streakAtLeast(30),
	},
	{
		Badge: model.Badge{
			BadgeID:     "phish-whisperer",
			Name:        "Phish Whisperer",
			Description: "Score 90 or higher on phishing fundamentals",
			Icon:        "fish",
			Requirement: "Best score >= 90 on phishing-basics",
			Rarity:      model.RarityEpic,
		},
		Met: moduleScoreAtLeast("phishing-basics", 90),
	},
	{
		Badge: model.Badge{
			BadgeID:     "analyst",
			Name:        "Security Analyst",
			Description: "Reach level 5",
			Icon:        "chart",
			Requirement: "Reach level 5",
			Rarity:      model.RarityRare,
		},
		Met: levelAtLeast(5),
	},
	{
		Badge: model.Badge{
			BadgeID:     "veteran",
			Name:        "Security Veteran",
			Description: "Reach level 10",
			Icon:        "star",
			Requirement: "Reach level 10",
			Rarity:      model.RarityLegendary,
		},
		Met: levelAtLeast(10),
	},
}
