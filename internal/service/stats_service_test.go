package service

import (
	"errors"
	"testing"
	"time"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"

	"gorm.io/gorm"
)

func newStatsService(t *testing.T, db *gorm.DB) *StatsService {
	t.Helper()
	return NewStatsService(
		repository.NewStudySessionRepository(db),
		repository.NewUserStatsRepository(db),
		repository.NewDailyProgressRepository(db),
		repository.NewUserSettingsRepository(db),
		nil,
		testConfig(),
	)
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func TestRecordSessionRejectsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(t, db)

	_, err := svc.RecordSession(1, RecordSessionInput{WordsStudied: 0})
	if !errors.Is(err, util.ErrEmptySession) {
		t.Errorf("err = %v, want ErrEmptySession", err)
	}
}

func TestRecordSessionRejectsInconsistentCounts(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(t, db)

	// 答对数超过学习数
	_, err := svc.RecordSession(1, RecordSessionInput{WordsStudied: 10, WordsCorrect: 11})
	if !errors.Is(err, util.ErrBadSessionCount) {
		t.Errorf("err = %v, want ErrBadSessionCount", err)
	}

	_, err = svc.RecordSession(1, RecordSessionInput{WordsStudied: 5, WordsCorrect: -1})
	if !errors.Is(err, util.ErrBadSessionCount) {
		t.Errorf("negative correct: err = %v, want ErrBadSessionCount", err)
	}

	var count int64
	db.Table("study_sessions").Count(&count)
	if count != 0 {
		t.Errorf("session rows = %d, want 0", count)
	}
}

func TestRecordSessionAccuracy(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(t, db)
	svc.now = fixedClock(day(2025, 3, 10))

	tests := []struct {
		name          string
		studied       int
		correct       int
		want          float64
		wantIncorrect int
	}{
		{"全对", 10, 10, 100, 0},
		{"七成", 10, 7, 70, 3},
		{"三分之一", 3, 1, 33.33, 2},
		{"三分之二", 3, 2, 66.67, 1},
		{"全错", 5, 0, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.RecordSession(1, RecordSessionInput{
				WordsStudied: tt.studied,
				WordsCorrect: tt.correct,
				StudyTime:    5,
			})
			if err != nil {
				t.Fatalf("RecordSession: %v", err)
			}
			if session.Accuracy != tt.want {
				t.Errorf("accuracy = %v, want %v", session.Accuracy, tt.want)
			}
			// 答错数由学习数与答对数推导，不取自调用方
			if session.WordsIncorrect != tt.wantIncorrect {
				t.Errorf("incorrect = %d, want %d", session.WordsIncorrect, tt.wantIncorrect)
			}
		})
	}
}

func TestRecordSessionAccumulatesStats(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(t, db)
	svc.now = fixedClock(day(2025, 3, 10))

	if _, err := svc.RecordSession(1, RecordSessionInput{WordsStudied: 10, WordsCorrect: 8, StudyTime: 15}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordSession(1, RecordSessionInput{WordsStudied: 5, WordsCorrect: 5, StudyTime: 7}); err != nil {
		t.Fatal(err)
	}

	stats, err := svc.GetUserStats(1)
	if err != nil {
		t.Fatalf("GetUserStats: %v", err)
	}

	if stats.TotalWordsLearned != 15 {
		t.Errorf("total words = %d, want 15", stats.TotalWordsLearned)
	}
	if stats.WordsMastered != 13 {
		t.Errorf("words mastered = %d, want 13", stats.WordsMastered)
	}
	if stats.TotalStudyTime != 22 {
		t.Errorf("study time = %d, want 22", stats.TotalStudyTime)
	}
	if stats.TotalSessions != 2 {
		t.Errorf("sessions = %d, want 2", stats.TotalSessions)
	}
	if stats.CorrectAnswers != 13 || stats.TotalAnswers != 15 {
		t.Errorf("answers = (%d, %d), want (13, 15)", stats.CorrectAnswers, stats.TotalAnswers)
	}
	if stats.LastStudyDate != "2025-03-10" {
		t.Errorf("last study date = %q, want 2025-03-10", stats.LastStudyDate)
	}
}

func TestStreakProgression(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(t, db)

	record := func(d time.Time) *model.UserStats {
		t.Helper()
		svc.now = fixedClock(d)
		if _, err := svc.RecordSession(1, RecordSessionInput{WordsStudied: 5, WordsCorrect: 5, StudyTime: 5}); err != nil {
			t.Fatalf("RecordSession: %v", err)
		}
		stats, err := svc.GetUserStats(1)
		if err != nil {
			t.Fatalf("GetUserStats: %v", err)
		}
		return stats
	}

	// 首次学习从1开始
	stats := record(day(2025, 3, 10))
	if stats.CurrentStreak != 1 || stats.LongestStreak != 1 {
		t.Fatalf("day1: streak = (%d, %d), want (1, 1)", stats.CurrentStreak, stats.LongestStreak)
	}

	// 同一天再学不变
	stats = record(day(2025, 3, 10))
	if stats.CurrentStreak != 1 {
		t.Fatalf("same day: streak = %d, want 1", stats.CurrentStreak)
	}

	// 连续两天加1
	stats = record(day(2025, 3, 11))
	if stats.CurrentStreak != 2 || stats.LongestStreak != 2 {
		t.Fatalf("day2: streak = (%d, %d), want (2, 2)", stats.CurrentStreak, stats.LongestStreak)
	}
	stats = record(day(2025, 3, 12))
	if stats.CurrentStreak != 3 {
		t.Fatalf("day3: streak = %d, want 3", stats.CurrentStreak)
	}

	// 断档后重新从1起算，最长记录保留
	stats = record(day(2025, 3, 20))
	if stats.CurrentStreak != 1 {
		t.Errorf("after gap: streak = %d, want 1", stats.CurrentStreak)
	}
	if stats.LongestStreak != 3 {
		t.Errorf("longest = %d, want 3", stats.LongestStreak)
	}
}

func TestAdvanceStreak(t *testing.T) {
	tests := []struct {
		name          string
		current       int
		lastStudyDate string
		want          int
	}{
		{"从未学习", 0, "", 1},
		{"今天已学过", 4, "2025-03-10", 4},
		{"昨天学过", 4, "2025-03-09", 5},
		{"断档两天", 4, "2025-03-08", 1},
		{"很久以前", 9, "2024-12-01", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := advanceStreak(tt.current, tt.lastStudyDate, "2025-03-10", "2025-03-09")
			if got != tt.want {
				t.Errorf("advanceStreak = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDailyProgressAccumulatesAndGoal(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(t, db)
	svc.now = fixedClock(day(2025, 3, 10))

	// 默认目标20：12个未达标
	if _, err := svc.RecordSession(1, RecordSessionInput{WordsStudied: 12, WordsCorrect: 10, StudyTime: 10}); err != nil {
		t.Fatal(err)
	}
	today, err := svc.GetTodayProgress(1)
	if err != nil {
		t.Fatalf("GetTodayProgress: %v", err)
	}
	if today.WordsStudied != 12 || today.GoalAchieved {
		t.Errorf("after 12 words: progress = (%d, %v), want (12, false)", today.WordsStudied, today.GoalAchieved)
	}

	// 再学9个累计21，达标
	if _, err := svc.RecordSession(1, RecordSessionInput{WordsStudied: 9, WordsCorrect: 9, StudyTime: 8}); err != nil {
		t.Fatal(err)
	}
	today, err = svc.GetTodayProgress(1)
	if err != nil {
		t.Fatalf("GetTodayProgress: %v", err)
	}
	if today.WordsStudied != 21 || !today.GoalAchieved {
		t.Errorf("after 21 words: progress = (%d, %v), want (21, true)", today.WordsStudied, today.GoalAchieved)
	}
	if today.StudyTime != 18 {
		t.Errorf("study time = %d, want 18", today.StudyTime)
	}
	if today.DailyGoal != 20 {
		t.Errorf("daily goal = %d, want 20", today.DailyGoal)
	}
}

func TestGetTodayProgressWithoutStudy(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(t, db)
	svc.now = fixedClock(day(2025, 3, 10))

	today, err := svc.GetTodayProgress(1)
	if err != nil {
		t.Fatalf("GetTodayProgress: %v", err)
	}
	if today.WordsStudied != 0 || today.GoalAchieved {
		t.Errorf("expected zero progress, got (%d, %v)", today.WordsStudied, today.GoalAchieved)
	}
	if today.Date != "2025-03-10" {
		t.Errorf("date = %q, want 2025-03-10", today.Date)
	}
}

func TestGetWeeklyDataPadsMissingDays(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(t, db)

	// 周一和周三学习
	svc.now = fixedClock(day(2025, 3, 10))
	if _, err := svc.RecordSession(1, RecordSessionInput{WordsStudied: 10, WordsCorrect: 8, StudyTime: 10}); err != nil {
		t.Fatal(err)
	}
	svc.now = fixedClock(day(2025, 3, 12))
	if _, err := svc.RecordSession(1, RecordSessionInput{WordsStudied: 6, WordsCorrect: 6, StudyTime: 5}); err != nil {
		t.Fatal(err)
	}

	// 周五查询
	svc.now = fixedClock(day(2025, 3, 14))
	week, err := svc.GetWeeklyData(1)
	if err != nil {
		t.Fatalf("GetWeeklyData: %v", err)
	}

	if len(week) != 7 {
		t.Fatalf("week length = %d, want 7", len(week))
	}
	if week[0].Date != "2025-03-08" || week[6].Date != "2025-03-14" {
		t.Errorf("range = [%s, %s], want [2025-03-08, 2025-03-14]", week[0].Date, week[6].Date)
	}

	byDate := make(map[string]WeeklyDay)
	for _, d := range week {
		byDate[d.Date] = d
	}
	if byDate["2025-03-10"].WordsStudied != 10 {
		t.Errorf("monday words = %d, want 10", byDate["2025-03-10"].WordsStudied)
	}
	if byDate["2025-03-12"].WordsStudied != 6 {
		t.Errorf("wednesday words = %d, want 6", byDate["2025-03-12"].WordsStudied)
	}
	if byDate["2025-03-11"].WordsStudied != 0 {
		t.Errorf("tuesday should be padded with zero, got %d", byDate["2025-03-11"].WordsStudied)
	}
	// 2025-03-10 是周一
	if byDate["2025-03-10"].DayName != "周一" {
		t.Errorf("day name = %q, want 周一", byDate["2025-03-10"].DayName)
	}
}

func TestGetUserStatsCreatesDefaults(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(t, db)

	stats, err := svc.GetUserStats(7)
	if err != nil {
		t.Fatalf("GetUserStats: %v", err)
	}
	if stats.UserID != 7 || stats.TotalSessions != 0 || stats.CurrentStreak != 0 {
		t.Errorf("unexpected defaults: %+v", stats)
	}
	if stats.LastStudyDate != "" {
		t.Errorf("last study date = %q, want empty", stats.LastStudyDate)
	}

	// 重复调用不产生第二行
	if _, err := svc.GetUserStats(7); err != nil {
		t.Fatalf("second GetUserStats: %v", err)
	}
	var count int64
	db.Table("user_stats").Where("user_id = ?", 7).Count(&count)
	if count != 1 {
		t.Errorf("stats rows = %d, want 1", count)
	}
}

func TestRecomputeStats(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(t, db)
	svc.now = fixedClock(day(2025, 3, 10))

	if _, err := svc.RecordSession(1, RecordSessionInput{WordsStudied: 10, WordsCorrect: 7, StudyTime: 12}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RecordSession(1, RecordSessionInput{WordsStudied: 4, WordsCorrect: 4, StudyTime: 3}); err != nil {
		t.Fatal(err)
	}

	// 人为破坏统计，重算应恢复
	stats, err := svc.GetUserStats(1)
	if err != nil {
		t.Fatal(err)
	}
	stats.TotalWordsLearned = 999
	stats.TotalSessions = 999
	if err := db.Save(stats).Error; err != nil {
		t.Fatal(err)
	}

	recomputed, err := svc.RecomputeStats(1)
	if err != nil {
		t.Fatalf("RecomputeStats: %v", err)
	}
	if recomputed.TotalWordsLearned != 14 {
		t.Errorf("total words = %d, want 14", recomputed.TotalWordsLearned)
	}
	if recomputed.TotalSessions != 2 {
		t.Errorf("sessions = %d, want 2", recomputed.TotalSessions)
	}
	if recomputed.TotalStudyTime != 15 {
		t.Errorf("study time = %d, want 15", recomputed.TotalStudyTime)
	}
	if recomputed.CorrectAnswers != 11 {
		t.Errorf("correct answers = %d, want 11", recomputed.CorrectAnswers)
	}
	// 连续天数不参与重算
	if recomputed.CurrentStreak != 1 {
		t.Errorf("streak = %d, want 1 (untouched)", recomputed.CurrentStreak)
	}
}

func TestDailyGoalFromSettings(t *testing.T) {
	db := newTestDB(t)
	svc := newStatsService(t, db)
	svc.now = fixedClock(day(2025, 3, 10))

	// 用户把目标调低到10
	settings := &model.UserSettings{UserID: 1, DailyGoal: 10, ShowPronunciation: true, ShowExamples: true}
	if err := db.Create(settings).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := svc.RecordSession(1, RecordSessionInput{WordsStudied: 11, WordsCorrect: 11, StudyTime: 9}); err != nil {
		t.Fatal(err)
	}
	today, err := svc.GetTodayProgress(1)
	if err != nil {
		t.Fatal(err)
	}
	if today.DailyGoal != 10 {
		t.Errorf("daily goal = %d, want 10 from settings", today.DailyGoal)
	}
	if !today.GoalAchieved {
		t.Error("11 words should achieve goal of 10")
	}
}
