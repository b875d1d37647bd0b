package repository

import (
	"errors"
	"secaware_backend/internal/model"

	"gorm.io/gorm"
)

type SettingsRepository struct {
	DB *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

func (r *SettingsRepository) FindOrCreateByUser(userID uint) (*model.UserSettings, error) {
	var settings model.UserSettings
	err := r.DB.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.UserSettings{
			UserID:        userID,
			Notifications: true,
			SoundEffects:  true,
			Difficulty:    model.Beginner,
			Theme:         "system",
		}
		if err := r.DB.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *SettingsRepository) Save(settings *model.UserSettings) error {
	return r.DB.Save(settings).Error
}
