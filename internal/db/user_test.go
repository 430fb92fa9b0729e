package db

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:db-user-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&User{}, &Article{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	DB = gdb
	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
}

func TestEnsureUserCreatesHashedAccountOnce(t *testing.T) {
	setupUserTestDB(t)

	if err := EnsureUser("root", "changeme"); err != nil {
		t.Fatalf("ensure user: %v", err)
	}

	var user User
	if err := DB.Where("username = ?", "root").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("changeme")); err != nil {
		t.Fatalf("stored password must be a bcrypt hash of the input: %v", err)
	}

	// 再次调用不会重复创建，也不会覆盖已有密码
	if err := EnsureUser("root", "other"); err != nil {
		t.Fatalf("ensure user again: %v", err)
	}
	var count int64
	if err := DB.Model(&User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected a single user, got %d", count)
	}
}

func TestUserOwnsArticles(t *testing.T) {
	setupUserTestDB(t)

	author := User{Username: "author", Password: "hashed"}
	if err := DB.Create(&author).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	articles := []Article{
		{Title: "第一篇", Body: "正文", UserID: author.ID},
		{Title: "第二篇", Body: "正文", UserID: author.ID},
	}
	for i := range articles {
		if err := DB.Create(&articles[i]).Error; err != nil {
			t.Fatalf("create article: %v", err)
		}
	}

	var loaded User
	if err := DB.Preload("Articles").First(&loaded, author.ID).Error; err != nil {
		t.Fatalf("load user with articles: %v", err)
	}
	if len(loaded.Articles) != 2 {
		t.Fatalf("expected 2 owned articles, got %d", len(loaded.Articles))
	}
	for _, article := range loaded.Articles {
		if article.UserID != author.ID {
			t.Fatalf("article %d must belong to %d, got %d", article.ID, author.ID, article.UserID)
		}
	}
}

func TestEnsureUserSkipsBlankCredentials(t *testing.T) {
	setupUserTestDB(t)

	if err := EnsureUser("  ", ""); err != nil {
		t.Fatalf("blank credentials must be a no-op, got %v", err)
	}
	var count int64
	if err := DB.Model(&User{}).Count(&count).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no users, got %d", count)
	}
}
