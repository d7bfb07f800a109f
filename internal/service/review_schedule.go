package service

import "time"

// MaxMasteryLevel 掌握等级上限
const MaxMasteryLevel = 5

// reviewIntervalDays 固定复习间隔表，按掌握等级索引（天）
// 0 级立即到期，5 级 30 天后到期；刻意不做难度因子自适应
var reviewIntervalDays = [...]int{0, 1, 3, 7, 14, 30}

// NextReviewAt 根据掌握等级计算下次复习时间
// 等级越界时回退到最长间隔 30 天；纯函数，永不失败
func NextReviewAt(masteryLevel int, now time.Time) time.Time {
	if masteryLevel < 0 || masteryLevel >= len(reviewIntervalDays) {
		return now.AddDate(0, 0, 30)
	}
	return now.AddDate(0, 0, reviewIntervalDays[masteryLevel])
}

// NextMasteryLevel 作答后的新掌握等级：答对升一级（封顶），答错归零
func NextMasteryLevel(current int, wasCorrect bool) int {
	if !wasCorrect {
		return 0
	}
	if current >= MaxMasteryLevel {
		return MaxMasteryLevel
	}
	return current + 1
}
