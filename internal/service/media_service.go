package service

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/proofpage/internal/db"
	"github.com/proofpage/internal/storage"
	"gorm.io/gorm"
)

// MaxUploadBytes 是允许上传的最大图片大小。
const MaxUploadBytes = 10 << 20

var (
	unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

	avatarTransform    = &storage.Transform{Width: 192, Height: 192}
	workImageTransform = &storage.Transform{Width: 640, Height: 360}
)

// MediaService 保存上传的图片并为其签发签名 URL。
type MediaService struct {
	db    *gorm.DB
	store storage.Store
	items *ItemService
	ttl   time.Duration
}

// Upload 是读入内存的上传文件。
type Upload struct {
	FileName string
	Data     []byte
}

// NewMediaService 返回一个新的 MediaService 实例。
func NewMediaService(gdb *gorm.DB, store storage.Store, ttl time.Duration) *MediaService {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MediaService{db: gdb, store: store, items: NewItemService(gdb), ttl: ttl}
}

// UploadTestimonialAvatar 保存头像并让推荐语指向它。
// 同时清空缩略图字段，交由回填任务重新生成。
func (s *MediaService) UploadTestimonialAvatar(ctx context.Context, user *db.User, testimonialID uint, file Upload) (string, error) {
	item, err := s.items.GetTestimonial(ctx, user.ID, testimonialID)
	if err != nil {
		return "", err
	}
	objectPath, err := s.storeUpload(ctx, user, file, "Please select an avatar image.")
	if err != nil {
		return "", err
	}

	err = s.db.WithContext(ctx).Model(&db.Testimonial{}).Where("id = ?", item.ID).
		Updates(map[string]interface{}{"avatar_url": objectPath, "avatar_thumb_url": nil}).Error
	if err != nil {
		return "", persistence("update testimonial avatar", err)
	}
	return objectPath, nil
}

// UploadWorkExampleImage 保存图片并让作品指向它。
func (s *MediaService) UploadWorkExampleImage(ctx context.Context, user *db.User, workExampleID uint, file Upload) (string, error) {
	item, err := s.items.GetWorkExample(ctx, user.ID, workExampleID)
	if err != nil {
		return "", err
	}
	objectPath, err := s.storeUpload(ctx, user, file, "Please select an image file.")
	if err != nil {
		return "", err
	}

	err = s.db.WithContext(ctx).Model(&db.WorkExample{}).Where("id = ?", item.ID).
		Updates(map[string]interface{}{"image_url": objectPath, "image_thumb_url": nil}).Error
	if err != nil {
		return "", persistence("update work example image", err)
	}
	return objectPath, nil
}

func (s *MediaService) storeUpload(ctx context.Context, user *db.User, file Upload, missing string) (string, error) {
	if len(file.Data) == 0 {
		return "", invalid("file", missing)
	}
	if len(file.Data) > MaxUploadBytes {
		return "", invalid("file", "Images must be 10 MB or smaller.")
	}
	contentType := mimetype.Detect(file.Data).String()
	if !strings.HasPrefix(contentType, "image/") {
		return "", invalid("file", "Only image files can be uploaded.")
	}

	page, err := NewPageService(s.db).GetByUser(ctx, user.ID)
	if err != nil {
		return "", err
	}

	objectPath := ObjectPath(user.ID, page.ID, file.FileName, uuid.NewString())
	if err := s.store.Upload(ctx, objectPath, file.Data, storage.UploadOptions{ContentType: contentType}); err != nil {
		return "", &StorageError{Op: "upload", Path: objectPath, Err: err}
	}
	return objectPath, nil
}

// ObjectPath 为上传文件生成 <user>/<page>/<id>-<clean name>.<ext>。
func ObjectPath(userID, pageID uint, fileName, id string) string {
	base := path.Base(strings.ReplaceAll(strings.TrimSpace(fileName), "\\", "/"))
	ext := strings.TrimPrefix(path.Ext(base), ".")
	name := strings.TrimSuffix(base, path.Ext(base))
	if ext == "" {
		ext = "jpg"
	}
	clean := strings.ToLower(unsafeFileChars.ReplaceAllString(name, "-"))
	if clean == "" || clean == "." || clean == "/" {
		clean = "upload"
	}
	return fmt.Sprintf("%d/%d/%s-%s.%s", userID, pageID, id, clean, strings.ToLower(unsafeFileChars.ReplaceAllString(ext, "")))
}

// ImageURL 优先为已有缩略图签发 URL；没有缩略图时
// 为原图签发带 transform 的 URL，由媒体接口负责缩放。
func (s *MediaService) ImageURL(original, thumb *string, transform *storage.Transform) string {
	if p := strings.TrimSpace(deref(thumb)); p != "" {
		if signed, err := s.store.SignedURL(p, s.ttl, nil); err == nil {
			return signed
		}
	}
	p := strings.TrimSpace(deref(original))
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://") {
		return p
	}
	signed, err := s.store.SignedURL(strings.TrimPrefix(p, s.store.Bucket()+"/"), s.ttl, transform)
	if err != nil {
		return ""
	}
	return signed
}

// AvatarURL 返回推荐人头像的展示地址。
func (s *MediaService) AvatarURL(item db.Testimonial) string {
	return s.ImageURL(item.AvatarURL, item.AvatarThumbURL, avatarTransform)
}

// WorkImageURL 返回作品图片的展示地址。
func (s *MediaService) WorkImageURL(item db.WorkExample) string {
	return s.ImageURL(item.ImageURL, item.ImageThumbURL, workImageTransform)
}
