package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Local 将对象保存为 <root>/<bucket>/ 下的文件，
// 并签发由媒体处理器提供服务的 URL。
type Local struct {
	root    string
	bucket  string
	baseURL string
	signer  *Signer
}

// NewLocal 返回 Local 存储。baseURL 是构造签名 URL 使用的公开源，
// 例如 https://proof.example。
func NewLocal(root, bucket, baseURL string, signer *Signer) *Local {
	return &Local{
		root:    root,
		bucket:  bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		signer:  signer,
	}
}

// Bucket 实现 Store。
func (l *Local) Bucket() string {
	return l.bucket
}

// Signer 向媒体处理器暴露令牌签名器。
func (l *Local) Signer() *Signer {
	return l.signer
}

// Download 实现 Store。
func (l *Local) Download(ctx context.Context, objectPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := l.resolve(objectPath)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return data, nil
}

// Upload 实现 Store。未设置 Upsert 时保留已存在的对象。
func (l *Local) Upload(ctx context.Context, objectPath string, data []byte, opts UploadOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := l.resolve(objectPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !opts.Upsert {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(full, flags, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return ErrObjectExists
		}
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// SignedURL 实现 Store。
func (l *Local) SignedURL(objectPath string, ttl time.Duration, transform *Transform) (string, error) {
	clean, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}
	token, err := l.signer.Sign(Grant{Bucket: l.bucket, Path: clean, Transform: transform}, ttl)
	if err != nil {
		return "", err
	}

	escaped := make([]string, 0, strings.Count(clean, "/")+1)
	for _, segment := range strings.Split(clean, "/") {
		escaped = append(escaped, url.PathEscape(segment))
	}
	return fmt.Sprintf("%s/media/%s/%s?token=%s", l.baseURL, url.PathEscape(l.bucket), strings.Join(escaped, "/"), url.QueryEscape(token)), nil
}

func (l *Local) resolve(objectPath string) (string, error) {
	clean, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(l.root, l.bucket, filepath.FromSlash(clean)), nil
}

// cleanObjectPath 规范化相对于存储桶的路径并拒绝目录穿越。
func cleanObjectPath(objectPath string) (string, error) {
	trimmed := strings.TrimSpace(objectPath)
	if trimmed == "" || strings.Contains(trimmed, "\\") {
		return "", ErrInvalidPath
	}
	clean := path.Clean("/" + trimmed)
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." {
		return "", ErrInvalidPath
	}
	for _, segment := range strings.Split(trimmed, "/") {
		if segment == ".." {
			return "", ErrInvalidPath
		}
	}
	return clean, nil
}
