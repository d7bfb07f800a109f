package repository

import (
	"time"
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type WordProgressRepository struct {
	DB *gorm.DB
}

func NewWordProgressRepository(db *gorm.DB) *WordProgressRepository {
	return &WordProgressRepository{DB: db}
}

func (r *WordProgressRepository) Create(progress *model.UserWordProgress) error {
	return r.DB.Create(progress).Error
}

func (r *WordProgressRepository) Update(progress *model.UserWordProgress) error {
	return r.DB.Save(progress).Error
}

// FindByUserAndWord 查找用户对某个单词的进度行，未学习过时返回 gorm.ErrRecordNotFound
func (r *WordProgressRepository) FindByUserAndWord(userID uint, wordID string) (*model.UserWordProgress, error) {
	var progress model.UserWordProgress
	err := r.DB.Where("user_id = ? AND word_id = ?", userID, wordID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// ListStudiedWordIDs 返回用户已有进度行的全部单词 ID
func (r *WordProgressRepository) ListStudiedWordIDs(userID uint) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.UserWordProgress{}).
		Where("user_id = ?", userID).
		Pluck("word_id", &ids).Error
	return ids, err
}

// ListDueByUserAndBook 返回当前书中到期待复习的进度行，最过期的在前
func (r *WordProgressRepository) ListDueByUserAndBook(userID uint, bookID string, now time.Time, limit int) ([]model.UserWordProgress, error) {
	var rows []model.UserWordProgress
	query := r.DB.Preload("Word").
		Joins("JOIN vocabulary_words ON vocabulary_words.id = user_word_progress.word_id").
		Where("user_word_progress.user_id = ? AND vocabulary_words.book_id = ?", userID, bookID).
		Where("user_word_progress.next_review IS NOT NULL AND user_word_progress.next_review <= ?", now).
		Order("user_word_progress.next_review ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&rows).Error
	return rows, err
}

// CountByUserAndBook 统计用户在某本书中已有进度的单词数
func (r *WordProgressRepository) CountByUserAndBook(userID uint, bookID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserWordProgress{}).
		Joins("JOIN vocabulary_words ON vocabulary_words.id = user_word_progress.word_id").
		Where("user_word_progress.user_id = ? AND vocabulary_words.book_id = ?", userID, bookID).
		Count(&count).Error
	return count, err
}
