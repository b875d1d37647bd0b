package model

import "time"

type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// Badge is an earned achievement marker. EarnedAt is set at grant time and
// never mutated afterwards.
// swagger:model Badge
type Badge struct {
	BadgeID     string      `json:"badgeId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	Requirement string      `json:"requirement"`
	Rarity      BadgeRarity `json:"rarity"`
	EarnedAt    time.Time   `json:"earnedAt"`
}
