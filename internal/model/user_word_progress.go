package model

import (
	"time"
)

// UserWordProgress 用户对单个单词的学习进度
// 首次学习即创建，之后每次作答更新，正常流程中不删除
// swagger:model UserWordProgress
type UserWordProgress struct {
	UUIDBase
	UserID       uint            `gorm:"index:idx_user_word,unique;not null" json:"userId"`
	WordID       string          `gorm:"type:varchar(36);index:idx_user_word,unique;not null" json:"wordId"`
	MasteryLevel int             `gorm:"default:0" json:"masteryLevel"` // 0-5，驱动下次复习间隔
	LastReviewed *time.Time      `json:"lastReviewed,omitempty"`
	ReviewCount  int             `gorm:"default:0" json:"reviewCount"`
	CorrectCount int             `gorm:"default:0" json:"correctCount"`
	NextReview   *time.Time      `gorm:"index" json:"nextReview,omitempty"`
	Word         *VocabularyWord `gorm:"foreignKey:WordID" json:"word,omitempty"`
}

func (UserWordProgress) TableName() string {
	return "user_word_progress"
}
