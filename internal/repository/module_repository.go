package repository

import (
	"secaware_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) FindAll() ([]model.TrainingModule, error) {
	var modules []model.TrainingModule
	err := r.DB.Order("id ASC").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) FindByModuleID(moduleID string) (*model.TrainingModule, error) {
	var module model.TrainingModule
	err := r.DB.Where("module_id = ?", moduleID).First(&module).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *ModuleRepository) FindByType(moduleType model.ModuleType) ([]model.TrainingModule, error) {
	var modules []model.TrainingModule
	err := r.DB.Where("type = ?", moduleType).Order("id ASC").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) Update(module *model.TrainingModule) error {
	return r.DB.Save(module).Error
}

// UpdateIntroVideo records the uploaded intro clip's URL and probed duration.
func (r *ModuleRepository) UpdateIntroVideo(moduleID, url string, seconds float64) error {
	return r.DB.Model(&model.TrainingModule{}).
		Where("module_id = ?", moduleID).
		Updates(map[string]interface{}{
			"intro_video_url":  url,
			"intro_video_secs": seconds,
		}).Error
}
