package service

import (
	"secaware_backend/internal/model"
	"secaware_backend/internal/repository"
)

// SettingsService owns UserSettings; updates are full-snapshot writes so the
// stored row always matches what the client last saw.
type SettingsService struct {
	SettingsRepo *repository.SettingsRepository
}

func NewSettingsService(settingsRepo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{SettingsRepo: settingsRepo}
}

type SettingsRequest struct {
	Notifications  *bool             `json:"notifications"`
	SoundEffects   *bool             `json:"soundEffects"`
	VoiceInput     *bool             `json:"voiceInput"`
	TextToSpeech   *bool             `json:"textToSpeech"`
	DarkMode       *bool             `json:"darkMode"`
	Difficulty     *model.Difficulty `json:"difficulty"`
	OnboardingSeen *bool             `json:"onboardingSeen"`
	Theme          *string           `json:"theme"`
}

func (s *SettingsService) Get(userID uint) (*model.UserSettings, error) {
	return s.SettingsRepo.FindOrCreateByUser(userID)
}

// Update applies only the fields the client sent and persists before
// returning.
func (s *SettingsService) Update(userID uint, req SettingsRequest) (*model.UserSettings, error) {
	settings, err := s.SettingsRepo.FindOrCreateByUser(userID)
	if err != nil {
		return nil, err
	}

	if req.Notifications != nil {
		settings.Notifications = *req.Notifications
	}
	if req.SoundEffects != nil {
		settings.SoundEffects = *req.SoundEffects
	}
	if req.VoiceInput != nil {
		settings.VoiceInput = *req.VoiceInput
	}
	if req.TextToSpeech != nil {
		settings.TextToSpeech = *req.TextToSpeech
	}
	if req.DarkMode != nil {
		settings.DarkMode = *req.DarkMode
	}
	if req.Difficulty != nil {
		settings.Difficulty = *req.Difficulty
	}
	if req.OnboardingSeen != nil {
		settings.OnboardingSeen = *req.OnboardingSeen
	}
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}

	if err := s.SettingsRepo.Save(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
