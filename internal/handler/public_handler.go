package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/proofpage/internal/service"
	"github.com/proofpage/internal/view"
	"go.uber.org/zap"
)

const defaultCTALabel = "Contact"

// ShowPublicPage 渲染完整的证明页并记录一次浏览。
func (a *API) ShowPublicPage(c *gin.Context) {
	page, err := a.public.Full(c.Request.Context(), c.Param("slug"))
	if err != nil {
		a.pageError(c, err)
		return
	}

	if err := a.analytics.RecordView(c.Request.Context(), page.Page.ID); err != nil {
		a.logger.Warn("record page view failed", zap.Uint("page_id", page.Page.ID), zap.Error(err))
	}

	a.renderHTML(c, http.StatusOK, "public_page.html", gin.H{
		"title":      page.Page.Title,
		"theme":      page.Page.Theme,
		"view":       page,
		"bio":        view.Markdown(page.Page.BioText()),
		"requestURL": "/r/" + page.Page.Slug,
		"shareURL":   "/p/" + page.Page.Slug + "/share",
	})
}

// ShowSharePage 渲染精简的分享页并记录一次浏览。
func (a *API) ShowSharePage(c *gin.Context) {
	page, err := a.public.Share(c.Request.Context(), c.Param("slug"))
	if err != nil {
		a.pageError(c, err)
		return
	}

	if err := a.analytics.RecordView(c.Request.Context(), page.Page.ID); err != nil {
		a.logger.Warn("record page view failed", zap.Uint("page_id", page.Page.ID), zap.Error(err))
	}

	data := gin.H{
		"title":     page.Page.Title,
		"theme":     page.Page.Theme,
		"view":      page,
		"publicURL": "/p/" + page.Page.Slug,
	}
	if page.Page.CTAEnabled && strings.TrimSpace(deref(page.Page.CTAURL)) != "" {
		label := strings.TrimSpace(deref(page.Page.CTALabel))
		if label == "" {
			label = defaultCTALabel
		}
		data["ctaURL"] = "/p/" + page.Page.Slug + "/share/cta"
		data["ctaLabel"] = label
	}
	a.renderHTML(c, http.StatusOK, "share_page.html", data)
}

// FollowCTA 记录一次点击并重定向到页面的 CTA 目标。
func (a *API) FollowCTA(c *gin.Context) {
	slug := c.Param("slug")
	sharePath := "/p/" + slug + "/share"

	page, err := a.pages.GetPublishedBySlug(c.Request.Context(), slug)
	if err != nil || !page.CTAEnabled {
		c.Redirect(http.StatusFound, sharePath)
		return
	}
	target := service.NormalizeCTATarget(deref(page.CTAURL))
	if target == "" {
		c.Redirect(http.StatusFound, sharePath)
		return
	}

	if err := a.analytics.RecordCTAClick(c.Request.Context(), page.ID); err != nil {
		a.logger.Warn("record cta click failed", zap.Uint("page_id", page.ID), zap.Error(err))
	}
	c.Redirect(http.StatusFound, target)
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
