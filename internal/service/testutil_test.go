package service

import (
	"fmt"
	"testing"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.VocabularyBook{},
		&model.VocabularyWord{},
		&model.UserVocabularyBook{},
		&model.UserWordProgress{},
		&model.StudySession{},
		&model.DailyProgress{},
		&model.UserSettings{},
		&model.UserStats{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Study: config.StudyConfig{
			DefaultDailyGoal: 20,
			DefaultWordLimit: 20,
		},
	}
}

func seedBook(t *testing.T, db *gorm.DB, wordCount int) (*model.VocabularyBook, []model.VocabularyWord) {
	t.Helper()

	book := &model.VocabularyBook{
		Name:       "测试词书",
		Difficulty: "beginner",
		TotalWords: wordCount,
		IsActive:   true,
	}
	if err := db.Create(book).Error; err != nil {
		t.Fatalf("seed book: %v", err)
	}

	words := make([]model.VocabularyWord, 0, wordCount)
	for i := 0; i < wordCount; i++ {
		word := model.VocabularyWord{
			BookID:    book.ID,
			Word:      fmt.Sprintf("word%d", i),
			WordOrder: i,
			Content: model.WordContent{
				Meanings: []model.WordMeaning{
					{PartOfSpeech: "n.", Definition: fmt.Sprintf("释义%d", i)},
				},
			},
		}
		if err := db.Create(&word).Error; err != nil {
			t.Fatalf("seed word: %v", err)
		}
		words = append(words, word)
	}
	return book, words
}

func selectBookForUser(t *testing.T, db *gorm.DB, userID uint, bookID string) {
	t.Helper()

	selection := &model.UserVocabularyBook{
		UserID:     userID,
		BookID:     bookID,
		SelectedAt: time.Now(),
		IsActive:   true,
	}
	if err := db.Create(selection).Error; err != nil {
		t.Fatalf("seed selection: %v", err)
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
