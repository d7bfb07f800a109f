package repository

import (
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type StudySessionRepository struct {
	DB *gorm.DB
}

func NewStudySessionRepository(db *gorm.DB) *StudySessionRepository {
	return &StudySessionRepository{DB: db}
}

// Create 追加一条会话日志，会话记录只增不改
func (r *StudySessionRepository) Create(session *model.StudySession) error {
	return r.DB.Create(session).Error
}

func (r *StudySessionRepository) ListByUser(userID uint, limit int) ([]model.StudySession, error) {
	var sessions []model.StudySession
	query := r.DB.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&sessions).Error
	return sessions, err
}

// SessionTotals 会话日志的聚合结果，用于统计重算
type SessionTotals struct {
	TotalWordsStudied int
	TotalWordsCorrect int
	TotalStudyTime    int
	TotalSessions     int
}

// SumByUser 从头汇总用户全部会话
func (r *StudySessionRepository) SumByUser(userID uint) (*SessionTotals, error) {
	var totals SessionTotals
	err := r.DB.Model(&model.StudySession{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(words_studied),0) AS total_words_studied, COALESCE(SUM(words_correct),0) AS total_words_correct, COALESCE(SUM(study_time),0) AS total_study_time, COUNT(*) AS total_sessions").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return &totals, nil
}
