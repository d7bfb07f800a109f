package service

import (
	"errors"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"

	"gorm.io/gorm"
)

// BookService 词汇书目录、选书关系与管理端书籍维护
type BookService struct {
	DB            *gorm.DB
	BookRepo      *repository.VocabularyBookRepository
	WordRepo      *repository.VocabularyWordRepository
	SelectionRepo *repository.UserVocabularyBookRepository
	ProgressRepo  *repository.WordProgressRepository
}

func NewBookService(
	db *gorm.DB,
	bookRepo *repository.VocabularyBookRepository,
	wordRepo *repository.VocabularyWordRepository,
	selectionRepo *repository.UserVocabularyBookRepository,
	progressRepo *repository.WordProgressRepository,
) *BookService {
	return &BookService{
		DB:            db,
		BookRepo:      bookRepo,
		WordRepo:      wordRepo,
		SelectionRepo: selectionRepo,
		ProgressRepo:  progressRepo,
	}
}

// ListBooks 返回所有上架的词汇书
func (s *BookService) ListBooks() ([]model.VocabularyBook, error) {
	return s.BookRepo.ListActive()
}

func (s *BookService) GetBook(bookID string) (*model.VocabularyBook, error) {
	book, err := s.BookRepo.FindByID(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// GetCurrentBook 返回用户当前选中的词汇书，未选书时返回 (nil, nil)
func (s *BookService) GetCurrentBook(userID uint) (*model.UserVocabularyBook, error) {
	selection, err := s.SelectionRepo.FindActiveByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return selection, nil
}

// ListUserBooks 返回用户的选书历史，含已停用的
func (s *BookService) ListUserBooks(userID uint) ([]model.UserVocabularyBook, error) {
	return s.SelectionRepo.ListByUser(userID)
}

// SelectBook 切换当前词汇书：停用旧选择并激活新选择，同一事务内完成
// 重新选回旧书时复用已有记录，学习进度不受影响
func (s *BookService) SelectBook(userID uint, bookID string) (*model.UserVocabularyBook, error) {
	if _, err := s.GetBook(bookID); err != nil {
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.SelectionRepo.DeactivateAll(tx, userID); err != nil {
			return err
		}
		return s.SelectionRepo.Upsert(tx, userID, bookID)
	})
	if err != nil {
		return nil, err
	}
	return s.SelectionRepo.FindActiveByUser(userID)
}

// DeselectBook 停用指定选书关系，用户退回未选书状态
func (s *BookService) DeselectBook(userID uint, bookID string) error {
	return s.SelectionRepo.Deactivate(userID, bookID)
}

// BookProgress 用户在某本书中的进度概览
type BookProgress struct {
	BookID       string `json:"bookId"`
	TotalWords   int    `json:"totalWords"`
	WordsStarted int64  `json:"wordsStarted"`
}

// GetBookProgress 返回用户在指定词汇书中已开始学习的单词数
func (s *BookService) GetBookProgress(userID uint, bookID string) (*BookProgress, error) {
	book, err := s.GetBook(bookID)
	if err != nil {
		return nil, err
	}
	started, err := s.ProgressRepo.CountByUserAndBook(userID, bookID)
	if err != nil {
		return nil, err
	}
	return &BookProgress{
		BookID:       bookID,
		TotalWords:   book.TotalWords,
		WordsStarted: started,
	}, nil
}

// ListWords 返回书内单词，按 word_order 排序，支持分页
func (s *BookService) ListWords(bookID string, limit, offset int) ([]model.VocabularyWord, error) {
	if _, err := s.GetBook(bookID); err != nil {
		return nil, err
	}
	return s.WordRepo.ListByBook(bookID, limit, offset)
}

// ----- 以下为管理端操作 -----

func (s *BookService) CreateBook(book *model.VocabularyBook) error {
	book.IsActive = true
	return s.BookRepo.Create(book)
}

func (s *BookService) UpdateBook(book *model.VocabularyBook) error {
	if _, err := s.GetBook(book.ID); err != nil {
		return err
	}
	return s.BookRepo.Update(book)
}

// DeleteBook 软删除词汇书，已有用户的学习进度保留
func (s *BookService) DeleteBook(bookID string) error {
	if _, err := s.GetBook(bookID); err != nil {
		return err
	}
	return s.BookRepo.Delete(bookID)
}

// AddWord 向词汇书追加单词并同步书的词数
func (s *BookService) AddWord(word *model.VocabularyWord) error {
	if _, err := s.GetBook(word.BookID); err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(word).Error; err != nil {
			return err
		}
		return s.recountInTx(tx, word.BookID)
	})
}

func (s *BookService) GetWord(wordID string) (*model.VocabularyWord, error) {
	word, err := s.WordRepo.FindByID(wordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWordNotFound
		}
		return nil, err
	}
	return word, nil
}

func (s *BookService) UpdateWord(word *model.VocabularyWord) error {
	if _, err := s.GetWord(word.ID); err != nil {
		return err
	}
	return s.WordRepo.Update(word)
}

func (s *BookService) DeleteWord(wordID string) error {
	word, err := s.GetWord(wordID)
	if err != nil {
		return err
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.VocabularyWord{}, "id = ?", wordID).Error; err != nil {
			return err
		}
		return s.recountInTx(tx, word.BookID)
	})
}

// AttachAudio 把转码后的发音音频地址写入单词正文
func (s *BookService) AttachAudio(wordID string, audioURL string) (*model.VocabularyWord, error) {
	word, err := s.GetWord(wordID)
	if err != nil {
		return nil, err
	}
	word.Content.AudioURL = audioURL
	if err := s.WordRepo.Update(word); err != nil {
		return nil, err
	}
	return word, nil
}

func (s *BookService) recountInTx(tx *gorm.DB, bookID string) error {
	var count int64
	if err := tx.Model(&model.VocabularyWord{}).Where("book_id = ?", bookID).Count(&count).Error; err != nil {
		return err
	}
	return tx.Model(&model.VocabularyBook{}).Where("id = ?", bookID).
		Update("total_words", count).Error
}
