package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/internal/repository"
	"vocab_edu_backend/internal/util"
	"vocab_edu_backend/pkg/logger"
	"vocab_edu_backend/pkg/monitoring"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const statsCacheTTL = 10 * time.Minute

// weekdayNames 周数据展示用的中文星期名，下标对应 time.Weekday
var weekdayNames = [...]string{"周日", "周一", "周二", "周三", "周四", "周五", "周六"}

// StatsService 会话记录与统计聚合
// 一次会话写入三张表：会话日志、累计统计、当日进度
// 三步串行且不包事务，中途失败返回错误但已写入的部分保留，可由 Recompute 修复
type StatsService struct {
	SessionRepo  *repository.StudySessionRepository
	StatsRepo    *repository.UserStatsRepository
	DailyRepo    *repository.DailyProgressRepository
	SettingsRepo *repository.UserSettingsRepository
	Redis        *redis.Client
	Cfg          *config.Config

	now func() time.Time
	// userLocks 按用户串行化会话记录，防止并发会话互相覆盖统计
	userLocks sync.Map
}

func NewStatsService(
	sessionRepo *repository.StudySessionRepository,
	statsRepo *repository.UserStatsRepository,
	dailyRepo *repository.DailyProgressRepository,
	settingsRepo *repository.UserSettingsRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *StatsService {
	return &StatsService{
		SessionRepo:  sessionRepo,
		StatsRepo:    statsRepo,
		DailyRepo:    dailyRepo,
		SettingsRepo: settingsRepo,
		Redis:        rdb,
		Cfg:          cfg,
		now:          time.Now,
	}
}

func (s *StatsService) lockUser(userID uint) *sync.Mutex {
	mu, _ := s.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// RecordSessionInput 一次学习会话的汇总结果，答错数由服务端推导
type RecordSessionInput struct {
	WordsStudied int
	WordsCorrect int
	StudyTime    int // 分钟
}

// RecordSession 记录一次完成的学习会话并更新统计与当日进度
func (s *StatsService) RecordSession(userID uint, input RecordSessionInput) (*model.StudySession, error) {
	if input.WordsStudied <= 0 {
		return nil, util.ErrEmptySession
	}
	if input.WordsCorrect < 0 || input.WordsCorrect > input.WordsStudied {
		return nil, util.ErrBadSessionCount
	}

	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	now := s.now()
	today := now.Format(util.DateFormat)

	session := &model.StudySession{
		UserID:         userID,
		WordsStudied:   input.WordsStudied,
		WordsCorrect:   input.WordsCorrect,
		WordsIncorrect: input.WordsStudied - input.WordsCorrect,
		StudyTime:      input.StudyTime,
		Accuracy:       accuracy(input.WordsCorrect, input.WordsStudied),
		SessionDate:    today,
	}
	if err := s.SessionRepo.Create(session); err != nil {
		monitoring.SessionCounter.WithLabelValues("failed").Inc()
		return nil, err
	}

	if err := s.applySessionToStats(userID, input, today); err != nil {
		monitoring.SessionCounter.WithLabelValues("failed").Inc()
		logger.Log.Error("更新累计统计失败，会话日志已落库",
			zap.Uint("user_id", userID), zap.String("session_id", session.ID), zap.Error(err))
		return nil, err
	}

	if err := s.applySessionToDaily(userID, input, today); err != nil {
		monitoring.SessionCounter.WithLabelValues("failed").Inc()
		logger.Log.Error("更新当日进度失败，会话日志与统计已落库",
			zap.Uint("user_id", userID), zap.String("session_id", session.ID), zap.Error(err))
		return nil, err
	}

	monitoring.SessionCounter.WithLabelValues("ok").Inc()
	s.invalidateStatsCache(userID)
	return session, nil
}

// applySessionToStats 把一次会话累加进用户统计，并推进连续学习天数
func (s *StatsService) applySessionToStats(userID uint, input RecordSessionInput, today string) error {
	stats, err := s.findOrCreateStats(userID)
	if err != nil {
		return err
	}

	stats.TotalWordsLearned += input.WordsStudied
	stats.WordsMastered += input.WordsCorrect
	stats.TotalStudyTime += input.StudyTime
	stats.TotalSessions++
	stats.CorrectAnswers += input.WordsCorrect
	stats.TotalAnswers += input.WordsStudied

	yesterday := mustParseDate(today).AddDate(0, 0, -1).Format(util.DateFormat)
	stats.CurrentStreak = advanceStreak(stats.CurrentStreak, stats.LastStudyDate, today, yesterday)
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}
	stats.LastStudyDate = today

	return s.StatsRepo.Update(stats)
}

// advanceStreak 连续学习天数推进规则：
// 从未学习记 1 天，昨天学过加 1 天，今天已学保持不变，更早则重新从 1 起算
func advanceStreak(current int, lastStudyDate, today, yesterday string) int {
	switch lastStudyDate {
	case "":
		return 1
	case today:
		return current
	case yesterday:
		return current + 1
	default:
		return 1
	}
}

func (s *StatsService) applySessionToDaily(userID uint, input RecordSessionInput, today string) error {
	goal := s.dailyGoal(userID)

	daily, err := s.DailyRepo.FindByUserAndDate(userID, today)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		daily = &model.DailyProgress{
			UserID:       userID,
			TargetDate:   today,
			WordsStudied: input.WordsStudied,
			StudyTime:    input.StudyTime,
			GoalAchieved: input.WordsStudied >= goal,
		}
		return s.DailyRepo.Create(daily)
	}

	daily.WordsStudied += input.WordsStudied
	daily.StudyTime += input.StudyTime
	daily.GoalAchieved = daily.WordsStudied >= goal
	return s.DailyRepo.Update(daily)
}

// dailyGoal 取用户设置的每日目标，读取失败时退回全局默认值
func (s *StatsService) dailyGoal(userID uint) int {
	settings, err := s.SettingsRepo.FindByUser(userID)
	if err != nil {
		return s.Cfg.Study.DefaultDailyGoal
	}
	return settings.DailyGoal
}

// GetUserStats 返回用户累计统计，优先走缓存，不存在时按零值创建（幂等）
func (s *StatsService) GetUserStats(userID uint) (*model.UserStats, error) {
	if cached := s.statsFromCache(userID); cached != nil {
		return cached, nil
	}

	stats, err := s.findOrCreateStats(userID)
	if err != nil {
		return nil, err
	}
	s.cacheStats(stats)
	return stats, nil
}

func (s *StatsService) findOrCreateStats(userID uint) (*model.UserStats, error) {
	stats, err := s.StatsRepo.FindByUser(userID)
	if err == nil {
		return stats, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	stats = &model.UserStats{UserID: userID}
	if err := s.StatsRepo.Create(stats); err != nil {
		// 并发创建时唯一索引兜底，重新读取已有行
		return s.StatsRepo.FindByUser(userID)
	}
	return stats, nil
}

// TodayProgress 今日学习进度与目标达成情况
type TodayProgress struct {
	Date         string `json:"date"`
	WordsStudied int    `json:"wordsStudied"`
	StudyTime    int    `json:"studyTime"`
	DailyGoal    int    `json:"dailyGoal"`
	GoalAchieved bool   `json:"goalAchieved"`
}

// GetTodayProgress 返回当日进度，今天尚未学习时返回零值进度
func (s *StatsService) GetTodayProgress(userID uint) (*TodayProgress, error) {
	today := s.now().Format(util.DateFormat)
	goal := s.dailyGoal(userID)

	result := &TodayProgress{Date: today, DailyGoal: goal}
	daily, err := s.DailyRepo.FindByUserAndDate(userID, today)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return result, nil
		}
		return nil, err
	}
	result.WordsStudied = daily.WordsStudied
	result.StudyTime = daily.StudyTime
	result.GoalAchieved = daily.GoalAchieved
	return result, nil
}

// WeeklyDay 最近一周中某一天的学习量
type WeeklyDay struct {
	Date         string `json:"date"`
	DayName      string `json:"dayName"`
	WordsStudied int    `json:"wordsStudied"`
	StudyTime    int    `json:"studyTime"`
	GoalAchieved bool   `json:"goalAchieved"`
}

// GetWeeklyData 返回含今天在内最近 7 天的学习量，无记录的日期补零
func (s *StatsService) GetWeeklyData(userID uint) ([]WeeklyDay, error) {
	now := s.now()
	start := now.AddDate(0, 0, -6)

	rows, err := s.DailyRepo.ListByUserAndRange(userID,
		start.Format(util.DateFormat), now.Format(util.DateFormat))
	if err != nil {
		return nil, err
	}
	byDate := make(map[string]model.DailyProgress, len(rows))
	for _, row := range rows {
		byDate[row.TargetDate] = row
	}

	week := make([]WeeklyDay, 0, 7)
	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		date := day.Format(util.DateFormat)
		entry := WeeklyDay{
			Date:    date,
			DayName: weekdayNames[day.Weekday()],
		}
		if row, ok := byDate[date]; ok {
			entry.WordsStudied = row.WordsStudied
			entry.StudyTime = row.StudyTime
			entry.GoalAchieved = row.GoalAchieved
		}
		week = append(week, entry)
	}
	return week, nil
}

// RecomputeStats 从会话日志重算累计统计的各项总量
// 连续天数不参与重算，保留现值
func (s *StatsService) RecomputeStats(userID uint) (*model.UserStats, error) {
	mu := s.lockUser(userID)
	mu.Lock()
	defer mu.Unlock()

	stats, err := s.findOrCreateStats(userID)
	if err != nil {
		return nil, err
	}
	totals, err := s.SessionRepo.SumByUser(userID)
	if err != nil {
		return nil, err
	}

	stats.TotalWordsLearned = totals.TotalWordsStudied
	stats.WordsMastered = totals.TotalWordsCorrect
	stats.TotalStudyTime = totals.TotalStudyTime
	stats.TotalSessions = totals.TotalSessions
	stats.CorrectAnswers = totals.TotalWordsCorrect
	stats.TotalAnswers = totals.TotalWordsStudied

	if err := s.StatsRepo.Update(stats); err != nil {
		return nil, err
	}
	s.invalidateStatsCache(userID)
	return stats, nil
}

// GetRecentSessions 返回用户最近的会话日志，最新的在前
func (s *StatsService) GetRecentSessions(userID uint, limit int) ([]model.StudySession, error) {
	return s.SessionRepo.ListByUser(userID, limit)
}

// accuracy 正确率百分比，四舍五入保留两位小数
func accuracy(correct, studied int) float64 {
	if studied <= 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(studied)*100*100) / 100
}

func mustParseDate(date string) time.Time {
	t, err := time.Parse(util.DateFormat, date)
	if err != nil {
		return time.Time{}
	}
	return t
}

func statsCacheKey(userID uint) string {
	return fmt.Sprintf("vocab:stats:%d", userID)
}

func (s *StatsService) statsFromCache(userID uint) *model.UserStats {
	if s.Redis == nil {
		return nil
	}
	data, err := s.Redis.Get(context.Background(), statsCacheKey(userID)).Bytes()
	if err != nil {
		return nil
	}
	var stats model.UserStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil
	}
	return &stats
}

func (s *StatsService) cacheStats(stats *model.UserStats) {
	if s.Redis == nil {
		return
	}
	data, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := s.Redis.Set(context.Background(), statsCacheKey(stats.UserID), data, statsCacheTTL).Err(); err != nil {
		logger.Log.Warn("写入统计缓存失败", zap.Uint("user_id", stats.UserID), zap.Error(err))
	}
}

func (s *StatsService) invalidateStatsCache(userID uint) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), statsCacheKey(userID)).Err(); err != nil {
		logger.Log.Warn("删除统计缓存失败", zap.Uint("user_id", userID), zap.Error(err))
	}
}
