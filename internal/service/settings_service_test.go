package service

import (
	"testing"
	"vocab_edu_backend/internal/repository"

	"gorm.io/gorm"
)

func newSettingsService(t *testing.T, db *gorm.DB) *SettingsService {
	t.Helper()
	return NewSettingsService(repository.NewUserSettingsRepository(db), testConfig())
}

func TestGetSettingsCreatesDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newSettingsService(t, db)

	settings, err := svc.GetSettings(1)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}

	if settings.DailyGoal != 20 {
		t.Errorf("daily goal = %d, want 20", settings.DailyGoal)
	}
	if !settings.ShowPronunciation || !settings.ShowExamples {
		t.Errorf("show flags = (%v, %v), want both true", settings.ShowPronunciation, settings.ShowExamples)
	}

	// 幂等：重复调用返回同一行
	again, err := svc.GetSettings(1)
	if err != nil {
		t.Fatalf("second GetSettings: %v", err)
	}
	if again.ID != settings.ID {
		t.Errorf("settings recreated: %s != %s", again.ID, settings.ID)
	}
	var count int64
	db.Table("user_settings").Where("user_id = ?", 1).Count(&count)
	if count != 1 {
		t.Errorf("settings rows = %d, want 1", count)
	}
}

func TestUpdateSettingsPartial(t *testing.T) {
	db := newTestDB(t)
	svc := newSettingsService(t, db)

	goal := 50
	settings, err := svc.UpdateSettings(1, UpdateSettingsInput{DailyGoal: &goal})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if settings.DailyGoal != 50 {
		t.Errorf("daily goal = %d, want 50", settings.DailyGoal)
	}
	// 未提供的字段保持默认
	if !settings.ShowPronunciation || !settings.ShowExamples {
		t.Errorf("show flags changed unexpectedly: (%v, %v)", settings.ShowPronunciation, settings.ShowExamples)
	}

	// 只关发音展示，目标不变
	off := false
	settings, err = svc.UpdateSettings(1, UpdateSettingsInput{ShowPronunciation: &off})
	if err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}
	if settings.ShowPronunciation {
		t.Error("show pronunciation should be off")
	}
	if settings.DailyGoal != 50 {
		t.Errorf("daily goal = %d, want 50 unchanged", settings.DailyGoal)
	}
	if !settings.ShowExamples {
		t.Error("show examples should stay on")
	}
}
