package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/inklog/internal/db"
	"github.com/inklog/internal/router"
)

func postLogin(t *testing.T, username, password string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	r := router.SetupRouter("test-secret", testTemplateGlob)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	setupHandlerTestDB(t)
	seedUser(t, "writer", "secret")

	w := postLogin(t, "writer", "wrong")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "用户名或密码错误") {
		t.Fatalf("expected credential error message, got %q", w.Body.String())
	}
	if cookie := w.Header().Get("Set-Cookie"); cookie != "" {
		t.Fatalf("failed login must not establish a session, got cookie %q", cookie)
	}
}

func TestLoginRejectsUnknownUser(t *testing.T) {
	setupHandlerTestDB(t)

	w := postLogin(t, "nobody", "secret")

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "用户名或密码错误") {
		t.Fatalf("unknown user must get the same generic message, got %q", w.Body.String())
	}
}

func TestLogoutClearsSession(t *testing.T) {
	setupHandlerTestDB(t)
	owner := seedUser(t, "owner", "secret")

	article := db.Article{Title: "标题", Body: "正文", UserID: owner.ID}
	if err := db.DB.Create(&article).Error; err != nil {
		t.Fatalf("seed article: %v", err)
	}

	r := router.SetupRouter("test-secret", testTemplateGlob)
	cookie := login(t, r, "owner", "secret")

	// 登出
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.Header.Set("Cookie", cookie)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect after logout, got %d", w.Code)
	}
	cleared := w.Header().Get("Set-Cookie")
	if cleared == "" {
		t.Fatal("logout must rewrite the session cookie")
	}

	// 拿着清空后的会话访问写操作应被拒绝
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/article-create/", nil)
	req.Header.Set("Cookie", cleared)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/login" {
		t.Fatalf("expected redirect to login after logout, got %d to %q", w.Code, w.Header().Get("Location"))
	}
}
