package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type WordExample struct {
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
}

type WordMeaning struct {
	PartOfSpeech string        `json:"partOfSpeech"`
	Definition   string        `json:"definition"`
	Examples     []WordExample `json:"examples"`
}

type WordPronunciation struct {
	US string `json:"us,omitempty"`
	UK string `json:"uk,omitempty"`
}

// WordContent 单词正文，整体作为 JSON 文档存储在 content 列
type WordContent struct {
	Pronunciation *WordPronunciation `json:"pronunciation,omitempty"`
	Meanings      []WordMeaning      `json:"meanings"`
	AudioURL      string             `json:"audioUrl,omitempty"` // 发音音频，由管理端上传
}

func (c WordContent) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	return string(b), err
}

func (c *WordContent) Scan(value interface{}) error {
	if value == nil {
		*c = WordContent{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	}
	return errors.New("unsupported type for WordContent")
}

// VocabularyWord 单词，归属唯一词汇书，word_order 为书内顺序
// swagger:model VocabularyWord
type VocabularyWord struct {
	UUIDBase
	BookID    string      `gorm:"type:varchar(36);index;not null" json:"bookId"`
	Word      string      `gorm:"size:100;not null" json:"word"`
	Content   WordContent `gorm:"type:json" json:"content"`
	WordOrder int         `gorm:"index;default:0" json:"wordOrder"`
}

func (VocabularyWord) TableName() string {
	return "vocabulary_words"
}
