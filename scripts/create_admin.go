// 创建管理员账号脚本
//
// 管理端接口（词汇书维护、发音音频上传）需要 admin 角色，
// 首次部署后用此脚本创建或提升管理员。
//
// 用法: go run scripts/create_admin.go -email admin@example.com -password <密码> [-name 管理员]

package main

import (
	"errors"
	"flag"
	"log"
	"os"
	"vocab_edu_backend/internal/config"
	"vocab_edu_backend/internal/model"
	"vocab_edu_backend/pkg/database"
	"vocab_edu_backend/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

func main() {
	email := flag.String("email", "", "管理员邮箱")
	password := flag.String("password", "", "管理员密码（至少8位）")
	name := flag.String("name", "管理员", "显示名称")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		log.Fatal("必须提供 -email 和至少8位的 -password")
	}

	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("密码加密失败: %v", err)
	}

	var user model.User
	err = db.Where("email = ?", *email).First(&user).Error
	switch {
	case err == nil:
		// 已有账号则提升为管理员并重置密码
		user.Role = model.Admin
		user.Password = string(hashed)
		if err := db.Save(&user).Error; err != nil {
			log.Fatalf("更新账号失败: %v", err)
		}
		log.Printf("已将 %s 提升为管理员", *email)
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = model.User{
			Name:     *name,
			Email:    *email,
			Password: string(hashed),
			Role:     model.Admin,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("创建账号失败: %v", err)
		}
		log.Printf("管理员 %s 创建成功", *email)
	default:
		log.Fatalf("查询账号失败: %v", err)
	}
}
