package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User 是文章的作者账号，密码只保存 bcrypt 哈希。
// 与 Article 一样不使用软删除；删除用户时级联删除其名下全部文章。
type User struct {
	ID        uint      `gorm:"primaryKey"`
	Username  string    `gorm:"size:64;unique;not null"`
	Password  string    `gorm:"not null"`
	Articles  []Article `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 指定自定义表名，避免自动复数化导致的歧义。
func (User) TableName() string {
	return "users"
}

// EnsureUser 按配置补齐登录账号：用户名或密码为空时直接跳过，
// 同名账号已存在时保持原样不覆盖，否则写入一条哈希后的新记录。
func EnsureUser(username, password string) error {
	name := strings.TrimSpace(username)
	secret := strings.TrimSpace(password)
	if name == "" || secret == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var count int64
	if err := DB.Model(&User{}).Where("username = ?", name).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return DB.Create(&User{Username: name, Password: string(hashed)}).Error
}
