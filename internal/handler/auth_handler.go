package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 统一的凭证错误，避免向调用方泄露用户名是否存在
var errBadCredentials = errors.New("invalid username or password")

// ShowLoginPage 渲染登录页面
func ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "登录",
	})
}

// authenticate 校验用户名与密码，成功时返回对应账号。
func authenticate(username, password string) (*db.User, error) {
	var user db.User
	if err := db.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errBadCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errBadCredentials
	}
	return &user, nil
}

func renderLoginError(c *gin.Context, status int, message string) {
	c.HTML(status, "login.html", gin.H{
		"title": "登录",
		"error": message,
	})
}

// Login 处理登录表单，成功后把用户身份写入会话并回到文章列表
func Login(c *gin.Context) {
	user, err := authenticate(c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		if errors.Is(err, errBadCredentials) {
			renderLoginError(c, http.StatusUnauthorized, "用户名或密码错误")
			return
		}
		renderLoginError(c, http.StatusInternalServerError, "登录失败，请稍后再试")
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		renderLoginError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.Redirect(http.StatusFound, "/article-list/")
}

// Logout 清空会话后回到文章列表
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "登出失败，请稍后再试。")
		return
	}
	c.Redirect(http.StatusFound, "/article-list/")
}

// AuthRequired 保护需要登录的路由，未登录的请求一律重定向到登录页
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sessions.Default(c).Get("user_id") == nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
