package repository

import (
	"time"
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserVocabularyBookRepository struct {
	DB *gorm.DB
}

func NewUserVocabularyBookRepository(db *gorm.DB) *UserVocabularyBookRepository {
	return &UserVocabularyBookRepository{DB: db}
}

// FindActiveByUser 返回用户当前激活的选书记录，不存在时返回 gorm.ErrRecordNotFound
func (r *UserVocabularyBookRepository) FindActiveByUser(userID uint) (*model.UserVocabularyBook, error) {
	var selection model.UserVocabularyBook
	err := r.DB.Preload("Book").
		Where("user_id = ? AND is_active = ?", userID, true).
		Order("selected_at DESC").
		First(&selection).Error
	if err != nil {
		return nil, err
	}
	return &selection, nil
}

// ListByUser 返回用户的选书历史（含已停用），按选择时间倒序
func (r *UserVocabularyBookRepository) ListByUser(userID uint) ([]model.UserVocabularyBook, error) {
	var selections []model.UserVocabularyBook
	err := r.DB.Preload("Book").
		Where("user_id = ?", userID).
		Order("selected_at DESC").
		Find(&selections).Error
	return selections, err
}

// DeactivateAll 将用户所有选书记录置为非激活
func (r *UserVocabularyBookRepository) DeactivateAll(tx *gorm.DB, userID uint) error {
	return tx.Model(&model.UserVocabularyBook{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Update("is_active", false).Error
}

// Deactivate 停用指定的选书关系
func (r *UserVocabularyBookRepository) Deactivate(userID uint, bookID string) error {
	return r.DB.Model(&model.UserVocabularyBook{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Update("is_active", false).Error
}

// Upsert 按 (user_id, book_id) 幂等写入并激活选书记录
// 用户重新选回旧书时激活已有行，选择历史得以保留
func (r *UserVocabularyBookRepository) Upsert(tx *gorm.DB, userID uint, bookID string) error {
	selection := model.UserVocabularyBook{
		UserID:     userID,
		BookID:     bookID,
		SelectedAt: time.Now(),
		IsActive:   true,
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"is_active", "selected_at"}),
	}).Create(&selection).Error
}
