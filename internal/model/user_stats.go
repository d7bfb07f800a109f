package model

// UserStats 用户累计统计，每个用户一行，会话记录后更新
// swagger:model UserStats
type UserStats struct {
	UUIDBase
	UserID            uint   `gorm:"uniqueIndex;not null" json:"userId"`
	TotalWordsLearned int    `gorm:"default:0" json:"totalWordsLearned"`
	WordsMastered     int    `gorm:"default:0" json:"wordsMastered"`
	WordsInProgress   int    `gorm:"default:0" json:"wordsInProgress"`
	TotalStudyTime    int    `gorm:"default:0" json:"totalStudyTime"` // 分钟
	TotalSessions     int    `gorm:"default:0" json:"totalSessions"`
	CorrectAnswers    int    `gorm:"default:0" json:"correctAnswers"`
	TotalAnswers      int    `gorm:"default:0" json:"totalAnswers"`
	CurrentStreak     int    `gorm:"default:0" json:"currentStreak"`
	LongestStreak     int    `gorm:"default:0" json:"longestStreak"`
	LastStudyDate     string `gorm:"size:10" json:"lastStudyDate"` // YYYY-MM-DD，空串表示从未学习
}

func (UserStats) TableName() string {
	return "user_stats"
}
