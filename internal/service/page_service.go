package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/proofpage/internal/db"
	"github.com/proofpage/internal/slug"
	"gorm.io/gorm"
)

const defaultHeadline = "Freelancer"

var (
	hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	slugPattern     = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// PageService 管理每个用户唯一的证明页。
type PageService struct {
	db    *gorm.DB
	slugs *slug.Generator
}

// PageInput 是控制台中证明页的表单。
type PageInput struct {
	Title       string
	Headline    string
	Bio         string
	Slug        string
	Status      string
	Theme       string
	AccentColor string
	CTAEnabled  bool
	CTALabel    string
	CTAURL      string
}

// NewPageService 返回一个新的 PageService 实例。
func NewPageService(gdb *gorm.DB) *PageService {
	s := &PageService{db: gdb}
	s.slugs = slug.NewGenerator(s)
	return s
}

// SlugExists 基于 proof_pages 表实现 slug.Checker。
func (s *PageService) SlugExists(ctx context.Context, candidate string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&db.ProofPage{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure 返回用户的页面，首次访问时创建草稿。
// slug 取自邮箱的本地部分。
func (s *PageService) Ensure(ctx context.Context, user *db.User) (*db.ProofPage, error) {
	page, err := s.GetByUser(ctx, user.ID)
	if err == nil {
		return page, nil
	}
	if !errors.Is(err, ErrPageNotFound) {
		return nil, err
	}

	seed, _, _ := strings.Cut(user.Email, "@")
	pageSlug, err := s.slugs.Generate(ctx, seed)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(user.Email)
	if title == "" {
		title = "My Proof"
	}

	created := db.ProofPage{
		UserID:      user.ID,
		Title:       title,
		Headline:    defaultHeadline,
		Slug:        pageSlug,
		Status:      db.PageStatusDraft,
		Theme:       db.ThemeLight,
		AccentColor: db.DefaultAccentColor,
	}
	if err := s.db.WithContext(ctx).Create(&created).Error; err != nil {
		return nil, persistence("create proof page", err)
	}
	return &created, nil
}

// GetByUser 返回 userID 拥有的页面。
func (s *PageService) GetByUser(ctx context.Context, userID uint) (*db.ProofPage, error) {
	var page db.ProofPage
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// GetPublishedBySlug 返回已发布的页面，草稿按不存在处理。
func (s *PageService) GetPublishedBySlug(ctx context.Context, pageSlug string) (*db.ProofPage, error) {
	var page db.ProofPage
	err := s.db.WithContext(ctx).
		Where("slug = ? AND status = ?", strings.TrimSpace(pageSlug), db.PageStatusPublished).
		First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Update 校验并保存页面表单，返回的提示取决于页面最终是否已发布。
func (s *PageService) Update(ctx context.Context, userID uint, input PageInput) (*db.ProofPage, string, error) {
	page, err := s.GetByUser(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	input = normalizePageInput(input)
	if err := validatePageInput(input); err != nil {
		return nil, "", err
	}

	if input.Slug != page.Slug {
		taken, err := s.SlugExists(ctx, input.Slug)
		if err != nil {
			return nil, "", err
		}
		if taken {
			return nil, "", invalid("slug", "That public URL is already taken.")
		}
	}

	page.Title = input.Title
	page.Headline = input.Headline
	page.Bio = optional(input.Bio)
	page.Slug = input.Slug
	page.Status = input.Status
	page.Theme = input.Theme
	page.AccentColor = input.AccentColor
	page.CTAEnabled = input.CTAEnabled
	page.CTALabel = optional(input.CTALabel)
	page.CTAURL = optional(input.CTAURL)

	if err := s.db.WithContext(ctx).Save(page).Error; err != nil {
		return nil, "", persistence("update proof page", err)
	}

	if page.IsPublished() {
		return page, "Proof page saved and published.", nil
	}
	return page, "Proof page saved as draft.", nil
}

func normalizePageInput(input PageInput) PageInput {
	input.Title = strings.TrimSpace(input.Title)
	input.Headline = strings.TrimSpace(input.Headline)
	input.Bio = strings.TrimSpace(input.Bio)
	input.Slug = strings.ToLower(strings.TrimSpace(input.Slug))
	input.Status = strings.TrimSpace(input.Status)
	if input.Status == "" {
		input.Status = db.PageStatusDraft
	}
	input.Theme = strings.TrimSpace(input.Theme)
	if input.Theme == "" {
		input.Theme = db.ThemeLight
	}
	input.AccentColor = strings.TrimSpace(input.AccentColor)
	if input.AccentColor == "" {
		input.AccentColor = db.DefaultAccentColor
	}
	input.CTALabel = strings.TrimSpace(input.CTALabel)
	input.CTAURL = strings.TrimSpace(input.CTAURL)
	return input
}

func validatePageInput(input PageInput) error {
	err := validation.Errors{
		"accent_color": validation.Validate(input.AccentColor,
			validation.Match(hexColorPattern).Error("Accent color must be a valid hex value like #3B82F6.")),
		"slug": validation.Validate(input.Slug,
			validation.Required.Error("Public URL cannot be empty."),
			validation.Length(1, 50).Error("Public URL must be at most 50 characters."),
			validation.Match(slugPattern).Error("Public URL may only contain lowercase letters, numbers and hyphens.")),
		"status": validation.Validate(input.Status,
			validation.In(db.PageStatusDraft, db.PageStatusPublished).Error("Status must be draft or published.")),
		"theme": validation.Validate(input.Theme,
			validation.In(db.ThemeLight, db.ThemeDark).Error("Theme must be light or dark.")),
		"title": validation.Validate(input.Title,
			validation.Length(0, 120).Error("Title must be at most 120 characters.")),
	}.Filter()
	if err := fromValidation(err); err != nil {
		return err
	}

	if input.CTAEnabled {
		if input.CTAURL == "" {
			return invalid("cta_url", "Add a CTA link or turn the CTA off.")
		}
		return validateCTATarget(input.CTAURL)
	}
	if input.CTAURL != "" {
		return validateCTATarget(input.CTAURL)
	}
	return nil
}

func optional(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
