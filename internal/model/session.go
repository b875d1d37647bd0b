package model

import "time"

type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is immutable once appended; ordering is append order.
type ChatMessage struct {
	ID        string           `json:"id"`
	Role      MessageRole      `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

type MessageMetadata struct {
	IsAttack         bool   `json:"isAttack,omitempty"`
	RedFlagTriggered string `json:"redFlagTriggered,omitempty"`
}

// SessionFeedback summarizes a finished attempt.
type SessionFeedback struct {
	Score           int      `json:"score"`
	Passed          bool     `json:"passed"`
	CorrectCount    int      `json:"correctCount"`
	TotalScenarios  int      `json:"totalScenarios"`
	XPEarned        int      `json:"xpEarned"`
	Strengths       []string `json:"strengths,omitempty"`
	Weaknesses      []string `json:"weaknesses,omitempty"`
	DurationSeconds int      `json:"durationSeconds"`
}

// TrainingSession is the single active-attempt slot for one user. The row is
// reused across attempts: StartSession rewrites it, ResetSession empties it.
// swagger:model TrainingSession
type TrainingSession struct {
	BaseModel
	UserID          uint             `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"-"`
	SessionID       string           `gorm:"size:36;index" json:"sessionId"`
	ModuleID        string           `gorm:"size:64" json:"moduleId"`
	IsActive        bool             `gorm:"default:false" json:"isActive"`
	StartTime       time.Time        `json:"startTime"`
	ScenarioIndex   int              `gorm:"default:0" json:"scenarioIndex"`
	Score           int              `gorm:"default:0" json:"score"`
	CorrectCount    int              `gorm:"default:0" json:"correctCount"`
	Messages        []ChatMessage    `gorm:"serializer:json" json:"messages"`
	Feedback        *SessionFeedback `gorm:"serializer:json" json:"feedback,omitempty"`
	Scenario        *Scenario        `gorm:"serializer:json" json:"scenario,omitempty"`
	SeenScenarioIDs []string         `gorm:"serializer:json" json:"-"`
	// ScenarioPending guards against a second generation request while one
	// is outstanding for this slot.
	ScenarioPending bool `gorm:"default:false" json:"-"`
}

func (TrainingSession) TableName() string {
	return "training_sessions"
}
