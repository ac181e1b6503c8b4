// Package storage 是保存上传媒体与缩略图的对象存储。
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrObjectNotFound 表示路径下没有对象。
	ErrObjectNotFound = errors.New("storage: object not found")
	// ErrObjectExists 表示未设置 Upsert 时路径已被占用。
	ErrObjectExists = errors.New("storage: object already exists")
	// ErrInvalidPath 表示路径为空或超出存储桶。
	ErrInvalidPath = errors.New("storage: invalid object path")
)

// UploadOptions 对应托管对象存储的上传选项。
type UploadOptions struct {
	Upsert       bool
	ContentType  string
	CacheControl string
}

// Transform 要求签名 URL 接口即时缩放对象。
type Transform struct {
	Width  int `json:"width"`
	Height int `json:"height,omitempty"`
}

// Store 是应用需要的对象存储能力。
type Store interface {
	Bucket() string
	Download(ctx context.Context, path string) ([]byte, error)
	Upload(ctx context.Context, path string, data []byte, opts UploadOptions) error
	SignedURL(path string, ttl time.Duration, transform *Transform) (string, error)
}
