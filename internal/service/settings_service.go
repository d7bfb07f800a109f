package service

import (
	"errors"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"

	"gorm.io/gorm"
)

// SettingsService 用户偏好设置
type SettingsService struct {
	SettingsRepo *repository.UserSettingsRepository
	Cfg          *config.Config
}

func NewSettingsService(settingsRepo *repository.UserSettingsRepository, cfg *config.Config) *SettingsService {
	return &SettingsService{
		SettingsRepo: settingsRepo,
		Cfg:          cfg,
	}
}

// GetSettings 获取用户设置，不存在时按默认值创建（幂等）
func (s *SettingsService) GetSettings(userID uint) (*model.UserSettings, error) {
	settings, err := s.SettingsRepo.FindByUser(userID)
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	settings = &model.UserSettings{
		UserID:            userID,
		DailyGoal:         s.Cfg.Study.DefaultDailyGoal,
		ShowPronunciation: true,
		ShowExamples:      true,
	}
	if err := s.SettingsRepo.Create(settings); err != nil {
		// 并发创建时唯一索引兜底，重新读取已有行
		return s.SettingsRepo.FindByUser(userID)
	}
	return settings, nil
}

// UpdateSettingsInput 仅更新非 nil 字段
type UpdateSettingsInput struct {
	DailyGoal         *int
	ShowPronunciation *bool
	ShowExamples      *bool
}

func (s *SettingsService) UpdateSettings(userID uint, input UpdateSettingsInput) (*model.UserSettings, error) {
	settings, err := s.GetSettings(userID)
	if err != nil {
		return nil, err
	}

	if input.DailyGoal != nil {
		settings.DailyGoal = *input.DailyGoal
	}
	if input.ShowPronunciation != nil {
		settings.ShowPronunciation = *input.ShowPronunciation
	}
	if input.ShowExamples != nil {
		settings.ShowExamples = *input.ShowExamples
	}

	if err := s.SettingsRepo.Update(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
