package handler

import (
	"github.com/inklog/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	articles *service.ArticleService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB) *API {
	return &API{
		db:       gdb,
		articles: service.NewArticleService(gdb),
	}
}
