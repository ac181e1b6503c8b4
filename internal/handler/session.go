package handler

import (
	"encoding/gob"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/proofpage/internal/db"
	"github.com/proofpage/internal/service"
)

const (
	sessionUserKey = "user_id"
	userContextKey = "__current_user"

	NoticeSuccess = "success"
	NoticeError   = "error"
)

// Notice 是重定向后只展示一次的提示。
type Notice struct {
	Kind    string
	Message string
}

func init() {
	gob.Register(Notice{})
}

func setNotice(c *gin.Context, kind, message string) {
	session := sessions.Default(c)
	session.AddFlash(Notice{Kind: kind, Message: message})
	_ = session.Save()
}

// popNotice 返回最新的一条提示并清空其余提示。
func popNotice(c *gin.Context) *Notice {
	session := sessions.Default(c)
	flashes := session.Flashes()
	if len(flashes) == 0 {
		return nil
	}
	_ = session.Save()
	if notice, ok := flashes[len(flashes)-1].(Notice); ok {
		return &notice
	}
	return nil
}

func currentUser(c *gin.Context) *db.User {
	if cached, exists := c.Get(userContextKey); exists {
		if user, ok := cached.(*db.User); ok {
			return user
		}
	}
	return nil
}

func sessionUserID(c *gin.Context) uint {
	switch id := sessions.Default(c).Get(sessionUserKey).(type) {
	case uint:
		return id
	case int:
		return uint(id)
	case uint64:
		return uint(id)
	default:
		return 0
	}
}

func (a *API) signIn(c *gin.Context, user *db.User) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionUserKey, user.ID)
	return session.Save()
}

// LoadUser 为每个请求解析会话中的用户（如有）。
func (a *API) LoadUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := sessionUserID(c)
		if id == 0 {
			c.Next()
			return
		}
		user, err := a.auth.Get(c.Request.Context(), id)
		switch {
		case err == nil:
			c.Set(userContextKey, user)
		case errors.Is(err, service.ErrUserNotFound):
			session := sessions.Default(c)
			session.Delete(sessionUserKey)
			_ = session.Save()
		default:
			_ = c.Error(err)
		}
		c.Next()
	}
}

// AuthRequired 将匿名访客送到登录页，并记住原本要去的地址。
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) == nil {
			c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.Path))
			c.Abort()
			return
		}
		c.Next()
	}
}

// GuestOnly 让已登录用户离开登录与注册页。
func GuestOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if currentUser(c) != nil {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

// safeNext 只接受站内路径。
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/dashboard"
	}
	return next
}
