package service

import (
	"errors"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"
	"vocab_edu_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// StudyService 学词与复习流程：取新词、取到期词、记录作答
type StudyService struct {
	ProgressRepo  *repository.WordProgressRepository
	WordRepo      *repository.VocabularyWordRepository
	SelectionRepo *repository.UserVocabularyBookRepository
	Cfg           *config.Config

	now func() time.Time
}

func NewStudyService(
	progressRepo *repository.WordProgressRepository,
	wordRepo *repository.VocabularyWordRepository,
	selectionRepo *repository.UserVocabularyBookRepository,
	cfg *config.Config,
) *StudyService {
	return &StudyService{
		ProgressRepo:  progressRepo,
		WordRepo:      wordRepo,
		SelectionRepo: selectionRepo,
		Cfg:           cfg,
		now:           time.Now,
	}
}

// GetNewWords 返回当前词书中用户尚未学过的单词，按词序取前 limit 个
// 未选书时返回空列表而非报错，前端据此引导用户先选书
func (s *StudyService) GetNewWords(userID uint, limit int) ([]model.VocabularyWord, error) {
	if limit <= 0 {
		limit = s.Cfg.Study.DefaultWordLimit
	}

	selection, err := s.SelectionRepo.FindActiveByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []model.VocabularyWord{}, nil
		}
		return nil, err
	}

	studiedIDs, err := s.ProgressRepo.ListStudiedWordIDs(userID)
	if err != nil {
		// 进度查询失败时降级为不过滤，宁可重复出词也不中断学习
		logger.Log.Warn("查询已学单词失败，降级为全量出词",
			zap.Uint("user_id", userID), zap.Error(err))
		return s.WordRepo.ListByBook(selection.BookID, limit, 0)
	}

	studied := make(map[string]struct{}, len(studiedIDs))
	for _, id := range studiedIDs {
		studied[id] = struct{}{}
	}

	words := make([]model.VocabularyWord, 0, limit)
	offset := 0
	batch := limit
	if batch < 50 {
		batch = 50
	}
	for len(words) < limit {
		page, err := s.WordRepo.ListByBook(selection.BookID, batch, offset)
		if err != nil {
			return nil, err
		}
		for _, w := range page {
			if _, ok := studied[w.ID]; ok {
				continue
			}
			words = append(words, w)
			if len(words) == limit {
				break
			}
		}
		if len(page) < batch {
			break
		}
		offset += batch
	}
	return words, nil
}

// GetDueWords 返回当前词书中到期待复习的单词，最过期的在前
func (s *StudyService) GetDueWords(userID uint, limit int) ([]model.VocabularyWord, error) {
	if limit <= 0 {
		limit = s.Cfg.Study.DefaultWordLimit
	}

	selection, err := s.SelectionRepo.FindActiveByUser(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []model.VocabularyWord{}, nil
		}
		return nil, err
	}

	rows, err := s.ProgressRepo.ListDueByUserAndBook(userID, selection.BookID, s.now(), limit)
	if err != nil {
		return nil, err
	}

	words := make([]model.VocabularyWord, 0, len(rows))
	for _, row := range rows {
		if row.Word != nil {
			words = append(words, *row.Word)
		}
	}
	return words, nil
}

// RecordAnswer 以给定掌握等级写入一次作答结果
// 首次作答创建进度行，之后累加计数并重排下次复习时间
func (s *StudyService) RecordAnswer(userID uint, wordID string, masteryLevel int, wasCorrect bool) (*model.UserWordProgress, error) {
	if masteryLevel < 0 || masteryLevel > MaxMasteryLevel {
		return nil, util.ErrBadMasteryLevel
	}
	if _, err := s.WordRepo.FindByID(wordID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWordNotFound
		}
		return nil, err
	}

	now := s.now()
	nextReview := NextReviewAt(masteryLevel, now)

	progress, err := s.ProgressRepo.FindByUserAndWord(userID, wordID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		progress = &model.UserWordProgress{
			UserID:       userID,
			WordID:       wordID,
			MasteryLevel: masteryLevel,
			LastReviewed: &now,
			ReviewCount:  1,
			NextReview:   &nextReview,
		}
		if wasCorrect {
			progress.CorrectCount = 1
		}
		if err := s.ProgressRepo.Create(progress); err != nil {
			return nil, err
		}
		return progress, nil
	}

	progress.MasteryLevel = masteryLevel
	progress.LastReviewed = &now
	progress.ReviewCount++
	if wasCorrect {
		progress.CorrectCount++
	}
	progress.NextReview = &nextReview
	if err := s.ProgressRepo.Update(progress); err != nil {
		return nil, err
	}
	return progress, nil
}

// AnswerWord 按统一进阶规则作答：答对升一级（封顶 5），答错归零
func (s *StudyService) AnswerWord(userID uint, wordID string, wasCorrect bool) (*model.UserWordProgress, error) {
	current := 0
	progress, err := s.ProgressRepo.FindByUserAndWord(userID, wordID)
	if err == nil {
		current = progress.MasteryLevel
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.RecordAnswer(userID, wordID, NextMasteryLevel(current, wasCorrect), wasCorrect)
}

// GetWordProgress 查询用户对单个单词的进度，未学过时返回 ErrWordNotFound
func (s *StudyService) GetWordProgress(userID uint, wordID string) (*model.UserWordProgress, error) {
	progress, err := s.ProgressRepo.FindByUserAndWord(userID, wordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrWordNotFound
		}
		return nil, err
	}
	return progress, nil
}
