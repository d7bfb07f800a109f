package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// StringList 以 JSON 数组形式存储的字符串列表
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for StringList")
}

// VocabularyBook 词汇书，由内容管理员维护，对学习者只读
// swagger:model VocabularyBook
type VocabularyBook struct {
	UUIDBase
	Name        string     `gorm:"size:100;not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	Difficulty  string     `gorm:"size:20;default:'beginner'" json:"difficulty"` // beginner / intermediate / advanced
	Tags        StringList `gorm:"type:json" json:"tags"`
	TotalWords  int        `gorm:"default:0" json:"totalWords"`
	IsActive    bool       `gorm:"default:true" json:"isActive"`
}

func (VocabularyBook) TableName() string {
	return "vocabulary_books"
}
