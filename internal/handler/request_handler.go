package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/proofpage/internal/service"
)

// ShowRequestForm 渲染已发布页面的公开推荐语表单。
func (a *API) ShowRequestForm(c *gin.Context) {
	page, err := a.pages.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		a.pageError(c, err)
		return
	}

	notice := popNotice(c)
	a.renderHTML(c, http.StatusOK, "request_form.html", gin.H{
		"title":     "Leave a testimonial",
		"theme":     page.Theme,
		"page":      page,
		"form":      service.RequestInput{},
		"notice":    notice,
		"submitted": notice != nil && notice.Kind == NoticeSuccess,
	})
}

// SubmitRequest 保存访客提交的推荐语，等待审核。
func (a *API) SubmitRequest(c *gin.Context) {
	slug := c.Param("slug")
	input := service.RequestInput{
		Name:        c.PostForm("name"),
		RoleCompany: c.PostForm("role_company"),
		Quote:       c.PostForm("quote"),
	}

	_, err := a.requests.Submit(c.Request.Context(), slug, input)
	var verr *service.ValidationError
	switch {
	case err == nil:
		setNotice(c, NoticeSuccess, "Thanks! Your testimonial was sent for review.")
		redirectSeeOther(c, "/r/"+slug)
	case errors.As(err, &verr):
		page, perr := a.pages.GetPublishedBySlug(c.Request.Context(), slug)
		if perr != nil {
			a.pageError(c, perr)
			return
		}
		a.renderHTML(c, http.StatusUnprocessableEntity, "request_form.html", gin.H{
			"title":  "Leave a testimonial",
			"theme":  page.Theme,
			"page":   page,
			"form":   input,
			"notice": &Notice{Kind: NoticeError, Message: verr.Message},
		})
	default:
		a.pageError(c, err)
	}
}

// RequestRateLimited 对被限流的提交返回表单和 429。
func (a *API) RequestRateLimited(c *gin.Context) {
	page, err := a.pages.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		a.pageError(c, err)
		return
	}
	a.renderHTML(c, http.StatusTooManyRequests, "request_form.html", gin.H{
		"title": "Leave a testimonial",
		"theme": page.Theme,
		"page":  page,
		"form": service.RequestInput{
			Name:        c.PostForm("name"),
			RoleCompany: c.PostForm("role_company"),
			Quote:       c.PostForm("quote"),
		},
		"notice": &Notice{Kind: NoticeError, Message: "Too many submissions. Please try again in a minute."},
	})
}

// pageError 页面不存在或未发布时渲染 404，其余情况返回 500。
func (a *API) pageError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		a.NotFound(c)
		return
	}
	a.internalError(c, err)
}
