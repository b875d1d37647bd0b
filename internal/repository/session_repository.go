package repository

import (
	"errors"
	"secaware_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

// FindOrCreateByUser returns the user's session slot, creating an empty one
// on first use. Each user has exactly one row.
func (r *SessionRepository) FindOrCreateByUser(userID uint) (*model.TrainingSession, error) {
	var session model.TrainingSession
	err := r.DB.Where("user_id = ?", userID).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		session = model.TrainingSession{UserID: userID}
		if err := r.DB.Create(&session).Error; err != nil {
			return nil, err
		}
		return &session, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// FindActiveByUser returns the user's session only while an attempt is
// running. No row or an inactive slot yields nil without error.
func (r *SessionRepository) FindActiveByUser(userID uint) (*model.TrainingSession, error) {
	var session model.TrainingSession
	err := r.DB.Where("user_id = ? AND is_active = ?", userID, true).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) Save(session *model.TrainingSession) error {
	return r.DB.Save(session).Error
}
