package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/proofpage/internal/service"
	"go.uber.org/zap"
)

// ShowLogin 渲染登录表单。
func (a *API) ShowLogin(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "Log in",
		"next":  safeNext(c.Query("next")),
	})
}

// Login 使用邮箱与密码登录。
func (a *API) Login(c *gin.Context) {
	email := c.PostForm("email")
	next := safeNext(c.PostForm("next"))

	user, err := a.auth.SignIn(c.Request.Context(), email, c.PostForm("password"))
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			a.logger.Error("sign in failed", zap.Error(err))
		}
		setNotice(c, NoticeError, service.Message(err))
		redirectSeeOther(c, "/login?next="+url.QueryEscape(next))
		return
	}

	if err := a.signIn(c, user); err != nil {
		a.internalError(c, err)
		return
	}
	redirectSeeOther(c, next)
}

// ShowSignup 渲染注册表单。
func (a *API) ShowSignup(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "signup.html", gin.H{"title": "Sign up"})
}

// Signup 创建账号并让新用户直接登录。
func (a *API) Signup(c *gin.Context) {
	user, err := a.auth.SignUp(c.Request.Context(), c.PostForm("email"), c.PostForm("password"))
	if err != nil {
		var verr *service.ValidationError
		if !errors.As(err, &verr) {
			a.logger.Error("sign up failed", zap.Error(err))
		}
		setNotice(c, NoticeError, service.Message(err))
		redirectSeeOther(c, "/signup")
		return
	}

	if _, err := a.pages.Ensure(c.Request.Context(), user); err != nil {
		a.internalError(c, err)
		return
	}
	if err := a.signIn(c, user); err != nil {
		a.internalError(c, err)
		return
	}
	setNotice(c, NoticeSuccess, "Welcome! Your proof page is ready to fill in.")
	redirectSeeOther(c, "/dashboard")
}

// Logout 清空会话。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	redirectSeeOther(c, "/login")
}
