package model

// UserSettings 用户偏好，首次访问时按默认值创建
// swagger:model UserSettings
type UserSettings struct {
	UUIDBase
	UserID            uint `gorm:"uniqueIndex;not null" json:"userId"`
	DailyGoal         int  `gorm:"default:20" json:"dailyGoal"`
	ShowPronunciation bool `gorm:"default:true" json:"showPronunciation"`
	ShowExamples      bool `gorm:"default:true" json:"showExamples"`
}

func (UserSettings) TableName() string {
	return "user_settings"
}
