package service

import (
	"errors"
	"testing"
	"time"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"

	"gorm.io/gorm"
)

func newStudyService(t *testing.T, db *gorm.DB) *StudyService {
	t.Helper()
	return NewStudyService(
		repository.NewWordProgressRepository(db),
		repository.NewVocabularyWordRepository(db),
		repository.NewUserVocabularyBookRepository(db),
		testConfig(),
	)
}

func TestGetNewWordsWithoutBook(t *testing.T) {
	db := newTestDB(t)
	svc := newStudyService(t, db)

	words, err := svc.GetNewWords(1, 10)
	if err != nil {
		t.Fatalf("GetNewWords: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("expected empty list without selected book, got %d words", len(words))
	}
}

func TestGetNewWordsExcludesStudied(t *testing.T) {
	db := newTestDB(t)
	svc := newStudyService(t, db)

	book, words := seedBook(t, db, 5)
	selectBookForUser(t, db, 1, book.ID)

	// 前两个词已作答过
	for _, w := range words[:2] {
		if _, err := svc.RecordAnswer(1, w.ID, 1, true); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}

	fresh, err := svc.GetNewWords(1, 10)
	if err != nil {
		t.Fatalf("GetNewWords: %v", err)
	}
	if len(fresh) != 3 {
		t.Fatalf("expected 3 new words, got %d", len(fresh))
	}
	for _, w := range fresh {
		if w.ID == words[0].ID || w.ID == words[1].ID {
			t.Errorf("studied word %s returned as new", w.Word)
		}
	}
}

func TestGetNewWordsRespectsLimit(t *testing.T) {
	db := newTestDB(t)
	svc := newStudyService(t, db)

	book, _ := seedBook(t, db, 10)
	selectBookForUser(t, db, 1, book.ID)

	words, err := svc.GetNewWords(1, 4)
	if err != nil {
		t.Fatalf("GetNewWords: %v", err)
	}
	if len(words) != 4 {
		t.Errorf("expected 4 words, got %d", len(words))
	}
	// 按书内顺序返回
	for i := 1; i < len(words); i++ {
		if words[i].WordOrder < words[i-1].WordOrder {
			t.Errorf("words out of order: %d before %d", words[i-1].WordOrder, words[i].WordOrder)
		}
	}
}

func TestRecordAnswerCreatesProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newStudyService(t, db)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	book, words := seedBook(t, db, 1)
	selectBookForUser(t, db, 1, book.ID)

	progress, err := svc.RecordAnswer(1, words[0].ID, 2, true)
	if err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}

	if progress.MasteryLevel != 2 {
		t.Errorf("mastery = %d, want 2", progress.MasteryLevel)
	}
	if progress.ReviewCount != 1 || progress.CorrectCount != 1 {
		t.Errorf("counts = (%d, %d), want (1, 1)", progress.ReviewCount, progress.CorrectCount)
	}
	if progress.NextReview == nil || !progress.NextReview.Equal(now.AddDate(0, 0, 3)) {
		t.Errorf("next review = %v, want %v", progress.NextReview, now.AddDate(0, 0, 3))
	}
	if progress.LastReviewed == nil || !progress.LastReviewed.Equal(now) {
		t.Errorf("last reviewed = %v, want %v", progress.LastReviewed, now)
	}
}

func TestRecordAnswerUpdatesExistingProgress(t *testing.T) {
	db := newTestDB(t)
	svc := newStudyService(t, db)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	book, words := seedBook(t, db, 1)
	selectBookForUser(t, db, 1, book.ID)

	if _, err := svc.RecordAnswer(1, words[0].ID, 1, true); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	progress, err := svc.RecordAnswer(1, words[0].ID, 0, false)
	if err != nil {
		t.Fatalf("second answer: %v", err)
	}

	if progress.MasteryLevel != 0 {
		t.Errorf("mastery = %d, want 0 after incorrect answer", progress.MasteryLevel)
	}
	if progress.ReviewCount != 2 {
		t.Errorf("review count = %d, want 2", progress.ReviewCount)
	}
	if progress.CorrectCount != 1 {
		t.Errorf("correct count = %d, want 1", progress.CorrectCount)
	}

	// 确认没有产生第二条进度记录
	var count int64
	db.Table("user_word_progress").Where("user_id = ? AND word_id = ?", 1, words[0].ID).Count(&count)
	if count != 1 {
		t.Errorf("progress rows = %d, want 1", count)
	}
}

func TestRecordAnswerValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newStudyService(t, db)

	book, words := seedBook(t, db, 1)
	selectBookForUser(t, db, 1, book.ID)

	if _, err := svc.RecordAnswer(1, words[0].ID, 6, true); !errors.Is(err, util.ErrBadMasteryLevel) {
		t.Errorf("mastery 6: err = %v, want ErrBadMasteryLevel", err)
	}
	if _, err := svc.RecordAnswer(1, words[0].ID, -1, true); !errors.Is(err, util.ErrBadMasteryLevel) {
		t.Errorf("mastery -1: err = %v, want ErrBadMasteryLevel", err)
	}
	if _, err := svc.RecordAnswer(1, "missing-word-id", 1, true); !errors.Is(err, util.ErrWordNotFound) {
		t.Errorf("unknown word: err = %v, want ErrWordNotFound", err)
	}
}

func TestAnswerWordProgression(t *testing.T) {
	db := newTestDB(t)
	svc := newStudyService(t, db)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(now)

	book, words := seedBook(t, db, 1)
	selectBookForUser(t, db, 1, book.ID)
	wordID := words[0].ID

	// 连续答对逐级上升
	for i := 1; i <= 5; i++ {
		progress, err := svc.AnswerWord(1, wordID, true)
		if err != nil {
			t.Fatalf("AnswerWord #%d: %v", i, err)
		}
		if progress.MasteryLevel != i {
			t.Fatalf("after %d correct answers mastery = %d, want %d", i, progress.MasteryLevel, i)
		}
	}

	// 封顶后继续答对保持5
	progress, err := svc.AnswerWord(1, wordID, true)
	if err != nil {
		t.Fatalf("AnswerWord at cap: %v", err)
	}
	if progress.MasteryLevel != 5 {
		t.Errorf("mastery = %d, want 5 at cap", progress.MasteryLevel)
	}

	// 答错归零
	progress, err = svc.AnswerWord(1, wordID, false)
	if err != nil {
		t.Fatalf("AnswerWord incorrect: %v", err)
	}
	if progress.MasteryLevel != 0 {
		t.Errorf("mastery = %d, want 0 after incorrect", progress.MasteryLevel)
	}
}

func TestGetDueWords(t *testing.T) {
	db := newTestDB(t)
	svc := newStudyService(t, db)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(start)

	book, words := seedBook(t, db, 3)
	selectBookForUser(t, db, 1, book.ID)

	// 词0等级1（1天后到期），词1等级3（7天后到期），词2未学
	if _, err := svc.RecordAnswer(1, words[0].ID, 1, true); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordAnswer(1, words[1].ID, 3, true); err != nil {
		t.Fatal(err)
	}

	// 当天无到期
	due, err := svc.GetDueWords(1, 10)
	if err != nil {
		t.Fatalf("GetDueWords: %v", err)
	}
	if len(due) != 0 {
		t.Errorf("expected no due words on day 0, got %d", len(due))
	}

	// 2天后仅词0到期
	svc.now = fixedClock(start.AddDate(0, 0, 2))
	due, err = svc.GetDueWords(1, 10)
	if err != nil {
		t.Fatalf("GetDueWords: %v", err)
	}
	if len(due) != 1 || due[0].ID != words[0].ID {
		t.Errorf("expected only word0 due after 2 days, got %d words", len(due))
	}

	// 8天后词0和词1都到期，未学的词2不会出现
	svc.now = fixedClock(start.AddDate(0, 0, 8))
	due, err = svc.GetDueWords(1, 10)
	if err != nil {
		t.Fatalf("GetDueWords: %v", err)
	}
	if len(due) != 2 {
		t.Fatalf("expected 2 due words after 8 days, got %d", len(due))
	}
	for _, w := range due {
		if w.ID == words[2].ID {
			t.Error("never-studied word must not appear in due list")
		}
	}
}

func TestNewAndDueWordsAreDisjoint(t *testing.T) {
	db := newTestDB(t)
	svc := newStudyService(t, db)
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = fixedClock(start)

	book, words := seedBook(t, db, 4)
	selectBookForUser(t, db, 1, book.ID)

	if _, err := svc.RecordAnswer(1, words[0].ID, 0, false); err != nil {
		t.Fatal(err)
	}

	newWords, err := svc.GetNewWords(1, 10)
	if err != nil {
		t.Fatal(err)
	}
	dueWords, err := svc.GetDueWords(1, 10)
	if err != nil {
		t.Fatal(err)
	}

	dueSet := make(map[string]bool)
	for _, w := range dueWords {
		dueSet[w.ID] = true
	}
	for _, w := range newWords {
		if dueSet[w.ID] {
			t.Errorf("word %s appears in both new and due lists", w.Word)
		}
	}
	// 等级0立即到期
	if !dueSet[words[0].ID] {
		t.Error("level-0 word expected in due list")
	}
}
