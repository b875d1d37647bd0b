package model

// ModuleType classifies the kind of attack a training module drills.
type ModuleType string

const (
	Phishing          ModuleType = "phishing"
	SocialEngineering ModuleType = "social-engineering"
	IncidentResponse  ModuleType = "incident-response"
	PasswordSecurity  ModuleType = "password-security"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
	Expert       Difficulty = "expert"
)

// ModuleStatus is derived per user from prerequisites and module progress.
type ModuleStatus string

const (
	StatusLocked     ModuleStatus = "locked"
	StatusAvailable  ModuleStatus = "available"
	StatusInProgress ModuleStatus = "in-progress"
	StatusCompleted  ModuleStatus = "completed"
)

// TrainingModule is a catalog entry. The catalog is seeded at migration and
// read-only at runtime; per-user status and best score live in UserProgress.
// swagger:model TrainingModule
type TrainingModule struct {
	BaseModel
	ModuleID         string     `gorm:"size:64;uniqueIndex;not null" json:"moduleId"`
	Type             ModuleType `gorm:"size:32;not null;index" json:"type"`
	Title            string     `gorm:"size:200;not null" json:"title"`
	Description      string     `gorm:"type:text" json:"description"`
	Difficulty       Difficulty `gorm:"size:16;not null" json:"difficulty"`
	EstimatedMinutes int        `gorm:"default:10" json:"estimatedMinutes"`
	TotalScenarios   int        `gorm:"not null" json:"totalScenarios"`
	RequiredScore    int        `gorm:"not null" json:"requiredScore"`
	Prerequisites    []string   `gorm:"serializer:json" json:"prerequisites"`
	IntroVideoURL    string     `gorm:"size:255" json:"introVideoUrl,omitempty"`
	IntroVideoSecs   float64    `gorm:"default:0" json:"introVideoSecs,omitempty"`
}

func (TrainingModule) TableName() string {
	return "training_modules"
}

// ModuleView is a catalog entry overlaid with one user's progress.
type ModuleView struct {
	TrainingModule
	Status             ModuleStatus `json:"status"`
	BestScore          *int         `json:"bestScore,omitempty"`
	Attempts           int          `json:"attempts"`
	CompletedScenarios int          `json:"completedScenarios"`
}
