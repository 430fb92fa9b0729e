package db

import "time"

// Article 定义了文章模型。Body 存储原始 Markdown 文本，
// 渲染后的 HTML 只在展示时临时生成。
// 不使用软删除：删除文章即物理删除，无恢复路径。
type Article struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:100;not null"`
	Body        string `gorm:"type:text;not null"`
	ViewsCounts uint   `gorm:"not null;default:0"`
	UserID      uint   `gorm:"not null;index"`
	User        User
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName 指定自定义表名，避免自动复数化导致的歧义。
func (Article) TableName() string {
	return "articles"
}
