package model

import (
	"time"
)

// UserVocabularyBook 用户与词汇书的选择关系
// 每个用户同一时间最多一条 is_active 记录；切换词汇书时旧记录仅置为非激活，保留历史
// swagger:model UserVocabularyBook
type UserVocabularyBook struct {
	UUIDBase
	UserID     uint            `gorm:"index:idx_user_book,unique;not null" json:"userId"`
	BookID     string          `gorm:"type:varchar(36);index:idx_user_book,unique;not null" json:"bookId"`
	SelectedAt time.Time       `gorm:"not null" json:"selectedAt"`
	IsActive   bool            `gorm:"default:true;index" json:"isActive"`
	Book       *VocabularyBook `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (UserVocabularyBook) TableName() string {
	return "user_vocabulary_books"
}
