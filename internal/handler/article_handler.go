package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

// ShowArticleCreate 渲染写文章的表单页面
func (a *API) ShowArticleCreate(c *gin.Context) {
	c.HTML(http.StatusOK, "article_create.html", gin.H{
		"title": "写文章",
	})
}

// CreateArticle 处理新文章的表单提交，成功后回到文章列表
func (a *API) CreateArticle(c *gin.Context) {
	input := service.ArticleInput{
		Title: c.PostForm("title"),
		Body:  c.PostForm("body"),
	}

	if _, err := a.articles.Create(currentUserID(c), input); err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			c.String(http.StatusBadRequest, "表单内容有误，请重新填写。")
			return
		}
		c.String(http.StatusInternalServerError, "保存文章失败，请稍后再试。")
		return
	}

	c.Redirect(http.StatusFound, "/article-list/")
}

// ShowArticleUpdate 渲染修改文章的表单页面，仅作者可见
func (a *API) ShowArticleUpdate(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
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

	if article.UserID != currentUserID(c) {
		c.String(http.StatusForbidden, "抱歉，你无权修改这篇文章。")
		return
	}

	c.HTML(http.StatusOK, "article_update.html", gin.H{
		"title":   "修改文章",
		"article": article,
	})
}

// UpdateArticle 覆盖文章的标题与正文，成功后跳转到文章详情
func (a *API) UpdateArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	input := service.ArticleInput{
		Title: c.PostForm("title"),
		Body:  c.PostForm("body"),
	}

	if _, err := a.articles.Update(currentUserID(c), id, input); err != nil {
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.Is(err, service.ErrNotOwner):
			c.String(http.StatusForbidden, "抱歉，你无权修改这篇文章。")
		case errors.Is(err, service.ErrInvalidInput):
			c.String(http.StatusBadRequest, "表单内容有误，请重新填写。")
		default:
			c.String(http.StatusInternalServerError, "保存文章失败，请稍后再试。")
		}
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/article-detail/%d/", id))
}

// DeleteArticle 删除文章后回到文章列表。删除与修改一样要求操作者是作者。
func (a *API) DeleteArticle(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	if err := a.articles.Delete(currentUserID(c), id); err != nil {
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			c.AbortWithStatus(http.StatusNotFound)
		case errors.Is(err, service.ErrNotOwner):
			c.String(http.StatusForbidden, "抱歉，你无权删除这篇文章。")
		default:
			c.String(http.StatusInternalServerError, "删除文章失败，请稍后再试。")
		}
		return
	}

	c.Redirect(http.StatusFound, "/article-list/")
}
