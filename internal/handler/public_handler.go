package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/markdown"
	"github.com/inklog/internal/pagination"
	"github.com/inklog/internal/service"
)

// 列表页每页展示 5 篇文章
const articlePageSize = 5

// ShowArticleList renders the public article list with search, ordering and pagination.
func (a *API) ShowArticleList(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))
	order := c.Query("order")

	articles, err := a.articles.List(service.ArticleFilter{
		Search: search,
		Order:  service.ParseOrder(order),
	})
	if err != nil {
		c.HTML(http.StatusInternalServerError, "article_list.html", gin.H{
			"title": "文章列表",
			"error": "获取文章失败",
			"year":  time.Now().Year(),
		})
		return
	}

	page := pagination.Paginate(articles, articlePageSize, c.Query("page"))

	c.HTML(http.StatusOK, "article_list.html", gin.H{
		"title":    "文章列表",
		"articles": page,
		"search":   search,
		"order":    order,
		"year":     time.Now().Year(),
	})
}

// ShowArticleDetail renders a single article with markdown content and a table of contents.
// 浏览量在渲染之前计入，即使后续渲染失败本次阅读也已被统计。
func (a *API) ShowArticleDetail(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	if _, err := a.articles.RecordView(id); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	article, err := a.articles.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	htmlContent, toc, err := markdown.Render(article.Body)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "article_detail.html", gin.H{
			"title": "文章详情",
			"error": "渲染内容失败",
			"year":  time.Now().Year(),
		})
		return
	}

	c.HTML(http.StatusOK, "article_detail.html", gin.H{
		"title":   article.Title,
		"article": article,
		"content": htmlContent,
		"toc":     toc,
		"year":    time.Now().Year(),
	})
}
