package model

// StudySession 一次学习/复习会话的只追加日志
// swagger:model StudySession
type StudySession struct {
	UUIDBase
	UserID         uint    `gorm:"index;not null" json:"userId"`
	WordsStudied   int     `gorm:"not null" json:"wordsStudied"`
	WordsCorrect   int     `gorm:"not null" json:"wordsCorrect"`
	WordsIncorrect int     `gorm:"not null" json:"wordsIncorrect"`
	StudyTime      int     `gorm:"not null" json:"studyTime"` // 分钟
	Accuracy       float64 `gorm:"type:decimal(5,2)" json:"accuracy"`
	SessionDate    string  `gorm:"size:10;index" json:"sessionDate"` // YYYY-MM-DD
}

func (StudySession) TableName() string {
	return "study_sessions"
}
