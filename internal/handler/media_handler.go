package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/proofpage/internal/imaging"
	"github.com/proofpage/internal/storage"
	"go.uber.org/zap"
)

// ServeMedia 输出签名 URL 指向的对象，授权中带有 transform 时先缩放。
func (a *API) ServeMedia(c *gin.Context) {
	bucket := c.Param("bucket")
	objectPath := strings.TrimPrefix(c.Param("path"), "/")
	if bucket != a.store.Bucket() {
		c.Status(http.StatusNotFound)
		return
	}

	grant, err := a.signer.Verify(c.Query("token"))
	if err != nil || grant.Bucket != bucket || grant.Path != objectPath {
		c.Status(http.StatusForbidden)
		return
	}

	data, err := a.store.Download(c.Request.Context(), objectPath)
	switch {
	case errors.Is(err, storage.ErrObjectNotFound):
		c.Status(http.StatusNotFound)
		return
	case errors.Is(err, storage.ErrInvalidPath):
		c.Status(http.StatusBadRequest)
		return
	case err != nil:
		a.internalError(c, err)
		return
	}

	if t := grant.Transform; t != nil && t.Width > 0 {
		resized, err := imaging.Fit(data, t.Width, t.Height)
		if err != nil {
			a.logger.Warn("media transform failed", zap.String("path", objectPath), zap.Error(err))
		} else {
			data = resized
		}
	}

	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, mimetype.Detect(data).String(), data)
}
