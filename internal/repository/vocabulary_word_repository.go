package repository

import (
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type VocabularyWordRepository struct {
	DB *gorm.DB
}

func NewVocabularyWordRepository(db *gorm.DB) *VocabularyWordRepository {
	return &VocabularyWordRepository{DB: db}
}

func (r *VocabularyWordRepository) Create(word *model.VocabularyWord) error {
	return r.DB.Create(word).Error
}

func (r *VocabularyWordRepository) FindByID(id string) (*model.VocabularyWord, error) {
	var word model.VocabularyWord
	err := r.DB.Where("id = ?", id).First(&word).Error
	if err != nil {
		return nil, err
	}
	return &word, nil
}

func (r *VocabularyWordRepository) Update(word *model.VocabularyWord) error {
	return r.DB.Save(word).Error
}

func (r *VocabularyWordRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.VocabularyWord{}).Error
}

// ListByBook 按书内顺序返回单词，limit<=0 时不限量
func (r *VocabularyWordRepository) ListByBook(bookID string, limit, offset int) ([]model.VocabularyWord, error) {
	var words []model.VocabularyWord
	query := r.DB.Where("book_id = ?", bookID).Order("word_order ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&words).Error
	return words, err
}

func (r *VocabularyWordRepository) CountByBook(bookID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.VocabularyWord{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}
