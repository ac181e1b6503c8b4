package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/proofpage/internal/service"
)

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// formBool 读取复选框的值。
func formBool(c *gin.Context, key string) bool {
	switch strings.ToLower(strings.TrimSpace(c.PostForm(key))) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}

// readUpload 读取 field 中的 multipart 文件。
// 缺少文件时返回空的 Upload，由服务层报告校验错误。
func readUpload(c *gin.Context, field string) (service.Upload, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return service.Upload{}, nil
	}
	file, err := header.Open()
	if err != nil {
		return service.Upload{}, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxUploadBytes+1))
	if err != nil {
		return service.Upload{}, err
	}
	return service.Upload{FileName: header.Filename, Data: data}, nil
}

// redirectSeeOther 在表单 POST 之后让浏览器以 GET 跳转到 location。
func redirectSeeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
