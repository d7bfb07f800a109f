package repository

import (
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type DailyProgressRepository struct {
	DB *gorm.DB
}

func NewDailyProgressRepository(db *gorm.DB) *DailyProgressRepository {
	return &DailyProgressRepository{DB: db}
}

func (r *DailyProgressRepository) Create(progress *model.DailyProgress) error {
	return r.DB.Create(progress).Error
}

func (r *DailyProgressRepository) Update(progress *model.DailyProgress) error {
	return r.DB.Save(progress).Error
}

// FindByUserAndDate 查找某日进度行，date 为 YYYY-MM-DD
func (r *DailyProgressRepository) FindByUserAndDate(userID uint, date string) (*model.DailyProgress, error) {
	var progress model.DailyProgress
	err := r.DB.Where("user_id = ? AND target_date = ?", userID, date).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// ListByUserAndRange 返回 [start, end] 闭区间内的进度行，按日期升序
func (r *DailyProgressRepository) ListByUserAndRange(userID uint, start, end string) ([]model.DailyProgress, error) {
	var rows []model.DailyProgress
	err := r.DB.Where("user_id = ? AND target_date >= ? AND target_date <= ?", userID, start, end).
		Order("target_date ASC").
		Find(&rows).Error
	return rows, err
}
