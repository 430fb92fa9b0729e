package service

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/inklog/internal/db"
	"gorm.io/gorm"
)

// 文章标题允许的最大长度（按字符计）
const maxTitleLength = 100

var (
	ErrArticleNotFound = errors.New("article not found")
	ErrNotOwner        = errors.New("user is not the article owner")

	// ErrInvalidInput 是所有输入校验错误的公共哨兵，调用方用 errors.Is 归类
	ErrInvalidInput  = errors.New("invalid article input")
	ErrTitleRequired = fmt.Errorf("%w: title is required", ErrInvalidInput)
	ErrTitleTooLong  = fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, maxTitleLength)
	ErrBodyRequired  = fmt.Errorf("%w: body is required", ErrInvalidInput)
)

// OrderBy 表示文章列表的排序指令
type OrderBy int

const (
	OrderDefault OrderBy = iota
	OrderByViews
)

// ParseOrder 将 order 查询参数归一化为排序指令，未识别的取值回退到默认排序。
func ParseOrder(raw string) OrderBy {
	if strings.TrimSpace(raw) == "views_counts" {
		return OrderByViews
	}
	return OrderDefault
}

// ArticleFilter describes filters for listing articles.
type ArticleFilter struct {
	Search string
	Order  OrderBy
}

// ArticleInput represents fields accepted when creating or updating an article.
type ArticleInput struct {
	Title string
	Body  string
}

// Validate 对输入执行字段级校验，返回具体的校验错误。
func (in ArticleInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(strings.TrimSpace(in.Title)) > maxTitleLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(in.Body) == "" {
		return ErrBodyRequired
	}
	return nil
}

// ArticleService wraps article related database operations.
type ArticleService struct {
	db *gorm.DB
}

// NewArticleService creates an ArticleService instance.
func NewArticleService(gdb *gorm.DB) *ArticleService {
	return &ArticleService{db: gdb}
}

// List 按关键词与排序指令返回文章列表。
// 关键词在标题或正文上做不区分大小写的子串匹配（两字段取并集）；
// 默认排序与按浏览量排序均为 views_counts 降序，并以创建时间、id 兜底保证分页稳定。
func (s *ArticleService) List(filter ArticleFilter) ([]db.Article, error) {
	query := s.db.Model(&db.Article{}).Preload("User")

	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + search + "%"
		query = query.Where("title LIKE ? OR body LIKE ?", like, like)
	}

	// OrderDefault 与 OrderByViews 在模型层的自然排序下等价，这里统一收敛
	var articles []db.Article
	if err := query.Order("views_counts desc, created_at desc, id desc").Find(&articles).Error; err != nil {
		return nil, err
	}
	return articles, nil
}

// Get fetches an article by id with its owner preloaded.
func (s *ArticleService) Get(id uint) (*db.Article, error) {
	var article db.Article
	if err := s.db.Preload("User").First(&article, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

// Create 校验输入后以 userID 为作者持久化一篇新文章。
func (s *ArticleService) Create(userID uint, input ArticleInput) (*db.Article, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	article := db.Article{
		Title:  strings.TrimSpace(input.Title),
		Body:   input.Body,
		UserID: userID,
	}
	if err := s.db.Create(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// Update 覆盖标题与正文。归属检查先于输入校验执行；校验失败时不产生任何写入。
func (s *ArticleService) Update(userID, id uint, input ArticleInput) (*db.Article, error) {
	var existing db.Article
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}

	if existing.UserID != userID {
		return nil, ErrNotOwner
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	existing.Title = strings.TrimSpace(input.Title)
	existing.Body = input.Body
	if err := s.db.Save(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// Delete 物理删除文章。与 Update 一样要求操作者是文章作者。
func (s *ArticleService) Delete(userID, id uint) error {
	var existing db.Article
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrArticleNotFound
		}
		return err
	}

	if existing.UserID != userID {
		return ErrNotOwner
	}

	return s.db.Delete(&existing).Error
}

// RecordView 将浏览量原子地加一并返回新值。
// 使用单条 UPDATE 表达式避免并发读下的丢失更新，且不触碰 updated_at。
func (s *ArticleService) RecordView(id uint) (uint, error) {
	result := s.db.Model(&db.Article{}).
		Where("id = ?", id).
		UpdateColumn("views_counts", gorm.Expr("views_counts + ?", 1))
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, ErrArticleNotFound
	}

	var article db.Article
	if err := s.db.Select("views_counts").First(&article, id).Error; err != nil {
		return 0, err
	}
	return article.ViewsCounts, nil
}
