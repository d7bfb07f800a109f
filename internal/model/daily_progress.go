package model

// DailyProgress 用户每个自然日的学习量，累加更新
// swagger:model DailyProgress
type DailyProgress struct {
	UUIDBase
	UserID       uint   `gorm:"index:idx_user_target_date,unique;not null" json:"userId"`
	TargetDate   string `gorm:"size:10;index:idx_user_target_date,unique;not null" json:"targetDate"` // YYYY-MM-DD
	WordsStudied int    `gorm:"default:0" json:"wordsStudied"`
	StudyTime    int    `gorm:"default:0" json:"studyTime"` // 分钟
	GoalAchieved bool   `gorm:"default:false" json:"goalAchieved"`
}

func (DailyProgress) TableName() string {
	return "daily_progress"
}
