package repository

import (
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type UserSettingsRepository struct {
	DB *gorm.DB
}

func NewUserSettingsRepository(db *gorm.DB) *UserSettingsRepository {
	return &UserSettingsRepository{DB: db}
}

func (r *UserSettingsRepository) FindByUser(userID uint) (*model.UserSettings, error) {
	var settings model.UserSettings
	err := r.DB.Where("user_id = ?", userID).First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *UserSettingsRepository) Create(settings *model.UserSettings) error {
	return r.DB.Create(settings).Error
}

func (r *UserSettingsRepository) Update(settings *model.UserSettings) error {
	return r.DB.Save(settings).Error
}
