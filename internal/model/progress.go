package model

// ModuleProgress is one user's durable record for a single catalog module.
type ModuleProgress struct {
	BestScore       int          `json:"bestScore"`
	Status          ModuleStatus `json:"status"`
	Attempts        int          `json:"attempts"`
	LastAttemptDate string       `json:"lastAttemptDate"`
}

// UserProgress is the durable account-level progression state. The engine in
// internal/engine is its only writer; every mutation is persisted before the
// call returns.
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID         uint                      `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"userId"`
	Level          int                       `gorm:"default:1" json:"level"`
	XP             int                       `gorm:"default:0" json:"xp"`
	XPToNextLevel  int                       `gorm:"default:100" json:"xpToNextLevel"`
	TotalScore     int                       `gorm:"default:0" json:"totalScore"`
	Streak         int                       `gorm:"default:0" json:"streak"`
	LastActiveDate string                    `gorm:"size:10" json:"lastActiveDate"`
	ModuleProgress map[string]ModuleProgress `gorm:"serializer:json" json:"moduleProgress"`
	Badges         []Badge                   `gorm:"serializer:json" json:"badges"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

// CompletedModules counts modules with completed status.
func (p *UserProgress) CompletedModules() int {
	n := 0
	for _, mp := range p.ModuleProgress {
		if mp.Status == StatusCompleted {
			n++
		}
	}
	return n
}

// HasBadge reports whether a badge id has already been earned.
func (p *UserProgress) HasBadge(badgeID string) bool {
	for _, b := range p.Badges {
		if b.BadgeID == badgeID {
			return true
		}
	}
	return false
}
