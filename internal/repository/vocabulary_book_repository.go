package repository

import (
	"vocab_edu_backend/internal/model"

	"gorm.io/gorm"
)

type VocabularyBookRepository struct {
	DB *gorm.DB
}

func NewVocabularyBookRepository(db *gorm.DB) *VocabularyBookRepository {
	return &VocabularyBookRepository{DB: db}
}

// ListActive 返回全部上架词汇书，按创建时间升序
func (r *VocabularyBookRepository) ListActive() ([]model.VocabularyBook, error) {
	var books []model.VocabularyBook
	err := r.DB.Where("is_active = ?", true).Order("created_at ASC").Find(&books).Error
	return books, err
}

func (r *VocabularyBookRepository) FindByID(id string) (*model.VocabularyBook, error) {
	var book model.VocabularyBook
	err := r.DB.Where("id = ?", id).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *VocabularyBookRepository) Create(book *model.VocabularyBook) error {
	return r.DB.Create(book).Error
}

func (r *VocabularyBookRepository) Update(book *model.VocabularyBook) error {
	return r.DB.Save(book).Error
}

func (r *VocabularyBookRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.VocabularyBook{}).Error
}

// RecountTotalWords 重新统计书内单词数并写回 total_words
func (r *VocabularyBookRepository) RecountTotalWords(bookID string) error {
	var count int64
	if err := r.DB.Model(&model.VocabularyWord{}).Where("book_id = ?", bookID).Count(&count).Error; err != nil {
		return err
	}
	return r.DB.Model(&model.VocabularyBook{}).Where("id = ?", bookID).
		Update("total_words", count).Error
}
