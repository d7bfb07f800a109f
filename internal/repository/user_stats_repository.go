package repository

import (
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type UserStatsRepository struct {
	DB *gorm.DB
}

func NewUserStatsRepository(db *gorm.DB) *UserStatsRepository {
	return &UserStatsRepository{DB: db}
}

func (r *UserStatsRepository) FindByUser(userID uint) (*model.UserStats, error) {
	var stats model.UserStats
	err := r.DB.Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *UserStatsRepository) Create(stats *model.UserStats) error {
	return r.DB.Create(stats).Error
}

func (r *UserStatsRepository) Update(stats *model.UserStats) error {
	return r.DB.Save(stats).Error
}
