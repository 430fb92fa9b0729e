package router

import (
	"html/template"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/db"
	"github.com/inklog/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由。
// templateGlob 为空时使用默认的模板目录，便于测试传入相对路径。
func SetupRouter(sessionSecret, templateGlob string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	secret := strings.TrimSpace(sessionSecret)
	if secret == "" {
		secret = "inklog-dev-secret"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("inklog_session", store))

	// 加载模板并添加自定义函数
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	})

	glob := strings.TrimSpace(templateGlob)
	if glob == "" {
		glob = "web/template/*.html"
	}
	r.LoadHTMLGlob(glob)

	api := handler.NewAPI(db.DB)

	// 公共页面
	r.GET("/", api.ShowArticleList)
	r.GET("/article-list/", api.ShowArticleList)
	r.GET("/article-detail/:id/", api.ShowArticleDetail)

	// 登录与登出
	r.GET("/login", handler.ShowLoginPage)
	r.POST("/login", handler.Login)
	r.GET("/logout", handler.Logout)

	// 需要认证的写操作
	auth := r.Group("")
	auth.Use(handler.AuthRequired())
	{
		auth.GET("/article-create/", api.ShowArticleCreate)
		auth.POST("/article-create/", api.CreateArticle)
		auth.GET("/article-update/:id/", api.ShowArticleUpdate)
		auth.POST("/article-update/:id/", api.UpdateArticle)
		auth.GET("/article-delete/:id/", api.DeleteArticle)
	}

	return r
}
