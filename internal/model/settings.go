package model

// UserSettings is pure configuration, one row per user. OnboardingSeen and
// Theme ride along with the toggles so the client has a single settings
// snapshot to read.
// swagger:model UserSettings
type UserSettings struct {
	BaseModel
	UserID         uint       `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"-"`
	Notifications  bool       `gorm:"default:true" json:"notifications"`
	SoundEffects   bool       `gorm:"default:true" json:"soundEffects"`
	VoiceInput     bool       `gorm:"default:false" json:"voiceInput"`
	TextToSpeech   bool       `gorm:"default:false" json:"textToSpeech"`
	DarkMode       bool       `gorm:"default:false" json:"darkMode"`
	Difficulty     Difficulty `gorm:"size:16;default:'beginner'" json:"difficulty"`
	OnboardingSeen bool       `gorm:"default:false" json:"onboardingSeen"`
	Theme          string     `gorm:"size:32;default:'system'" json:"theme"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
