package database

import (
	"fmt"
	"log"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dbc := &cfg.Database
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		dbc.User,
		dbc.Password,
		dbc.Host,
		dbc.Port,
		dbc.DBName,
		dbc.Charset,
		dbc.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	// release 模式默认跳过自动迁移，--migrate 强制执行
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		err = db.AutoMigrate(
			&model.User{},
			&model.VocabularyBook{},
			&model.VocabularyWord{},
			&model.UserVocabularyBook{},
			&model.UserWordProgress{},
			&model.StudySession{},
			&model.DailyProgress{},
			&model.UserSettings{},
			&model.UserStats{},
		)

		if err != nil {
			return nil, err
		}

		log.Println("Database migration completed")
	}

	seedVocabulary(db)

	return db, nil
}

// seedVocabulary 词汇书为空时插入默认内容，便于开箱即用
func seedVocabulary(db *gorm.DB) {
	var count int64
	db.Model(&model.VocabularyBook{}).Count(&count)
	if count > 0 {
		return
	}

	books := []struct {
		book  model.VocabularyBook
		words []model.VocabularyWord
	}{
		{
			book: model.VocabularyBook{
				Name:        "大学英语四级核心词汇",
				Description: "CET-4 高频核心词，按考试词频排序",
				Difficulty:  "beginner",
				Tags:        model.StringList{"CET-4", "考试"},
				IsActive:    true,
			},
			words: []model.VocabularyWord{
				{Word: "abandon", WordOrder: 1, Content: model.WordContent{
					Pronunciation: &model.WordPronunciation{US: "/əˈbændən/", UK: "/əˈbændən/"},
					Meanings: []model.WordMeaning{{PartOfSpeech: "v.", Definition: "放弃；抛弃", Examples: []model.WordExample{
						{Sentence: "They had to abandon the car and walk.", Translation: "他们不得不弃车步行。"},
					}}},
				}},
				{Word: "ability", WordOrder: 2, Content: model.WordContent{
					Pronunciation: &model.WordPronunciation{US: "/əˈbɪləti/", UK: "/əˈbɪləti/"},
					Meanings: []model.WordMeaning{{PartOfSpeech: "n.", Definition: "能力；才能", Examples: []model.WordExample{
						{Sentence: "She has the ability to explain things clearly.", Translation: "她有把事情讲清楚的能力。"},
					}}},
				}},
				{Word: "absorb", WordOrder: 3, Content: model.WordContent{
					Pronunciation: &model.WordPronunciation{US: "/əbˈzɔːrb/", UK: "/əbˈzɔːb/"},
					Meanings: []model.WordMeaning{{PartOfSpeech: "v.", Definition: "吸收；理解", Examples: []model.WordExample{
						{Sentence: "Plants absorb water through their roots.", Translation: "植物通过根部吸收水分。"},
					}}},
				}},
				{Word: "academic", WordOrder: 4, Content: model.WordContent{
					Pronunciation: &model.WordPronunciation{US: "/ˌækəˈdemɪk/", UK: "/ˌækəˈdemɪk/"},
					Meanings: []model.WordMeaning{{PartOfSpeech: "adj.", Definition: "学术的；学业的", Examples: []model.WordExample{
						{Sentence: "His academic record is excellent.", Translation: "他的学业成绩非常优秀。"},
					}}},
				}},
			},
		},
		{
			book: model.VocabularyBook{
				Name:        "托福核心词汇",
				Description: "TOEFL 高频学术词汇",
				Difficulty:  "advanced",
				Tags:        model.StringList{"TOEFL", "留学"},
				IsActive:    true,
			},
			words: []model.VocabularyWord{
				{Word: "hypothesis", WordOrder: 1, Content: model.WordContent{
					Pronunciation: &model.WordPronunciation{US: "/haɪˈpɑːθəsɪs/", UK: "/haɪˈpɒθəsɪs/"},
					Meanings: []model.WordMeaning{{PartOfSpeech: "n.", Definition: "假说；假设", Examples: []model.WordExample{
						{Sentence: "The results support our original hypothesis.", Translation: "实验结果支持我们最初的假设。"},
					}}},
				}},
				{Word: "phenomenon", WordOrder: 2, Content: model.WordContent{
					Pronunciation: &model.WordPronunciation{US: "/fəˈnɑːmɪnən/", UK: "/fəˈnɒmɪnən/"},
					Meanings: []model.WordMeaning{{PartOfSpeech: "n.", Definition: "现象", Examples: []model.WordExample{
						{Sentence: "Migration is a natural phenomenon.", Translation: "迁徙是一种自然现象。"},
					}}},
				}},
			},
		},
	}

	for _, item := range books {
		item.book.TotalWords = len(item.words)
		if err := db.Create(&item.book).Error; err != nil {
			log.Printf("seed vocabulary book failed: %v", err)
			continue
		}
		for i := range item.words {
			item.words[i].BookID = item.book.ID
			db.Create(&item.words[i])
		}
	}

	log.Println("Default vocabulary seeded")
}
