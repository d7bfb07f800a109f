package service

import (
	"errors"
	"testing"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"

	"gorm.io/gorm"
)

func newBookService(t *testing.T, db *gorm.DB) *BookService {
	t.Helper()
	return NewBookService(
		db,
		repository.NewVocabularyBookRepository(db),
		repository.NewVocabularyWordRepository(db),
		repository.NewUserVocabularyBookRepository(db),
		repository.NewWordProgressRepository(db),
	)
}

func TestSelectBookKeepsSingleActive(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(t, db)

	bookA, _ := seedBook(t, db, 2)
	bookB, _ := seedBook(t, db, 2)

	selection, err := svc.SelectBook(1, bookA.ID)
	if err != nil {
		t.Fatalf("select A: %v", err)
	}
	if selection.BookID != bookA.ID || !selection.IsActive {
		t.Fatalf("unexpected selection: %+v", selection)
	}

	// 切换到B后，A不再激活
	selection, err = svc.SelectBook(1, bookB.ID)
	if err != nil {
		t.Fatalf("select B: %v", err)
	}
	if selection.BookID != bookB.ID {
		t.Errorf("active book = %s, want %s", selection.BookID, bookB.ID)
	}

	var activeCount int64
	db.Table("user_vocabulary_books").Where("user_id = ? AND is_active = ?", 1, true).Count(&activeCount)
	if activeCount != 1 {
		t.Errorf("active selections = %d, want 1", activeCount)
	}

	// 历史保留两条
	history, err := svc.ListUserBooks(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(history) != 2 {
		t.Errorf("history = %d rows, want 2", len(history))
	}
}

func TestSelectBookReactivatesOldSelection(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(t, db)

	bookA, _ := seedBook(t, db, 1)
	bookB, _ := seedBook(t, db, 1)

	if _, err := svc.SelectBook(1, bookA.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SelectBook(1, bookB.ID); err != nil {
		t.Fatal(err)
	}
	// 选回A复用原记录，不新增行
	if _, err := svc.SelectBook(1, bookA.ID); err != nil {
		t.Fatal(err)
	}

	var total int64
	db.Table("user_vocabulary_books").Where("user_id = ?", 1).Count(&total)
	if total != 2 {
		t.Errorf("selection rows = %d, want 2", total)
	}

	current, err := svc.GetCurrentBook(1)
	if err != nil {
		t.Fatal(err)
	}
	if current == nil || current.BookID != bookA.ID {
		t.Errorf("current book = %+v, want book A", current)
	}
}

func TestSelectBookUnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(t, db)

	if _, err := svc.SelectBook(1, "no-such-book"); !errors.Is(err, util.ErrBookNotFound) {
		t.Errorf("err = %v, want ErrBookNotFound", err)
	}
}

func TestGetCurrentBookWithoutSelection(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(t, db)

	current, err := svc.GetCurrentBook(1)
	if err != nil {
		t.Fatalf("GetCurrentBook: %v", err)
	}
	if current != nil {
		t.Errorf("expected nil selection, got %+v", current)
	}
}

func TestDeselectBook(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(t, db)

	book, _ := seedBook(t, db, 1)
	if _, err := svc.SelectBook(1, book.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeselectBook(1, book.ID); err != nil {
		t.Fatalf("DeselectBook: %v", err)
	}

	current, err := svc.GetCurrentBook(1)
	if err != nil {
		t.Fatal(err)
	}
	if current != nil {
		t.Errorf("expected no active selection after deselect, got %+v", current)
	}
}

func TestAddWordSyncsTotalWords(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(t, db)

	book, _ := seedBook(t, db, 2)

	word := &model.VocabularyWord{
		BookID:    book.ID,
		Word:      "serendipity",
		WordOrder: 2,
		Content: model.WordContent{
			Meanings: []model.WordMeaning{{PartOfSpeech: "n.", Definition: "机缘巧合"}},
		},
	}
	if err := svc.AddWord(word); err != nil {
		t.Fatalf("AddWord: %v", err)
	}

	updated, err := svc.GetBook(book.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.TotalWords != 3 {
		t.Errorf("total words = %d, want 3", updated.TotalWords)
	}

	// 删除后回落
	if err := svc.DeleteWord(word.ID); err != nil {
		t.Fatalf("DeleteWord: %v", err)
	}
	updated, err = svc.GetBook(book.ID)
	if err != nil {
		t.Fatal(err)
	}
	if updated.TotalWords != 2 {
		t.Errorf("total words after delete = %d, want 2", updated.TotalWords)
	}
}

func TestGetBookProgress(t *testing.T) {
	db := newTestDB(t)
	bookSvc := newBookService(t, db)
	studySvc := newStudyService(t, db)

	book, words := seedBook(t, db, 4)
	selectBookForUser(t, db, 1, book.ID)

	if _, err := studySvc.RecordAnswer(1, words[0].ID, 1, true); err != nil {
		t.Fatal(err)
	}
	if _, err := studySvc.RecordAnswer(1, words[1].ID, 0, false); err != nil {
		t.Fatal(err)
	}

	progress, err := bookSvc.GetBookProgress(1, book.ID)
	if err != nil {
		t.Fatalf("GetBookProgress: %v", err)
	}
	if progress.TotalWords != 4 {
		t.Errorf("total = %d, want 4", progress.TotalWords)
	}
	if progress.WordsStarted != 2 {
		t.Errorf("started = %d, want 2", progress.WordsStarted)
	}
}

func TestAttachAudio(t *testing.T) {
	db := newTestDB(t)
	svc := newBookService(t, db)

	_, words := seedBook(t, db, 1)

	word, err := svc.AttachAudio(words[0].ID, "/vocab-edu/audio/words/abc.mp3")
	if err != nil {
		t.Fatalf("AttachAudio: %v", err)
	}
	if word.Content.AudioURL != "/vocab-edu/audio/words/abc.mp3" {
		t.Errorf("audio url = %q", word.Content.AudioURL)
	}

	// 重新读取确认落库
	reloaded, err := svc.GetWord(words[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if reloaded.Content.AudioURL != word.Content.AudioURL {
		t.Errorf("persisted audio url = %q", reloaded.Content.AudioURL)
	}
	// 原有释义不受影响
	if len(reloaded.Content.Meanings) != 1 {
		t.Errorf("meanings lost after audio attach: %+v", reloaded.Content)
	}
}
