package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/proofpage/internal/service"
	"go.uber.org/zap"
)

const dashboardPath = "/dashboard"

// Dashboard 渲染所有者的编辑页，包含统计、完整度与分享摘要。
func (a *API) Dashboard(c *gin.Context) {
	user := currentUser(c)
	dash, err := a.dashboard.Load(c.Request.Context(), user)
	if err != nil {
		a.internalError(c, err)
		return
	}

	avatars := make(map[uint]string)
	for _, item := range dash.Content.Testimonials() {
		if src := a.media.AvatarURL(item); src != "" {
			avatars[item.ID] = src
		}
	}
	workImages := make(map[uint]string)
	for _, item := range dash.Content.WorkExamples() {
		if src := a.media.WorkImageURL(item); src != "" {
			workImages[item.ID] = src
		}
	}

	a.renderHTML(c, http.StatusOK, "dashboard.html", gin.H{
		"title":      "Dashboard",
		"theme":      dash.Page.Theme,
		"dash":       dash,
		"avatars":    avatars,
		"workImages": workImages,
		"requestURL": a.baseURL + "/r/" + dash.Page.Slug,
	})
}

// finish 根据 err 或 success 生成提示并重定向回控制台。
// 非预期错误会被记录日志。
func (a *API) finish(c *gin.Context, err error, success string) {
	if err != nil {
		var verr *service.ValidationError
		if !errors.As(err, &verr) && !errors.Is(err, service.ErrNotFound) && !errors.Is(err, service.ErrEdgeOfList) {
			a.logger.Error("dashboard action failed",
				zap.String("path", c.Request.URL.Path),
				zap.Uint("user_id", currentUser(c).ID),
				zap.Error(err))
		}
		setNotice(c, NoticeError, service.Message(err))
	} else {
		setNotice(c, NoticeSuccess, success)
	}
	redirectSeeOther(c, dashboardPath)
}

// UpdatePage 保存页面设置表单。
func (a *API) UpdatePage(c *gin.Context) {
	input := service.PageInput{
		Title:       c.PostForm("title"),
		Headline:    c.PostForm("headline"),
		Bio:         c.PostForm("bio"),
		Slug:        c.PostForm("slug"),
		Status:      c.PostForm("status"),
		Theme:       c.PostForm("theme"),
		AccentColor: c.PostForm("accent_color"),
		CTAEnabled:  formBool(c, "cta_enabled"),
		CTALabel:    c.PostForm("cta_label"),
		CTAURL:      c.PostForm("cta_url"),
	}
	_, message, err := a.pages.Update(c.Request.Context(), currentUser(c).ID, input)
	a.finish(c, err, message)
}

// CreateSection 追加一个指定类型的分区。
func (a *API) CreateSection(c *gin.Context) {
	_, err := a.sections.Create(c.Request.Context(), currentUser(c).ID, strings.TrimSpace(c.PostForm("type")))
	a.finish(c, err, "Section added.")
}

// MoveSection 将分区与相邻分区交换位置。
func (a *API) MoveSection(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.finish(c, service.ErrSectionNotFound, "")
		return
	}
	direction := c.PostForm("direction")
	err = a.sections.Move(c.Request.Context(), currentUser(c).ID, id, direction)
	a.finish(c, err, service.MoveMessage(direction))
}

// DeleteSection 删除分区及其条目。
func (a *API) DeleteSection(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.finish(c, service.ErrSectionNotFound, "")
		return
	}
	a.finish(c, a.sections.Delete(c.Request.Context(), currentUser(c).ID, id), "Section deleted.")
}

// ApproveRequest 将待审核的请求转为推荐语。
func (a *API) ApproveRequest(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.finish(c, service.ErrRequestNotFound, "")
		return
	}
	_, err = a.requests.Approve(c.Request.Context(), currentUser(c).ID, id)
	a.finish(c, err, "Testimonial request approved and added to your page.")
}

// RejectRequest 隐藏待审核的请求。
func (a *API) RejectRequest(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		a.finish(c, service.ErrRequestNotFound, "")
		return
	}
	a.finish(c, a.requests.Reject(c.Request.Context(), currentUser(c).ID, id), "Testimonial request rejected.")
}
