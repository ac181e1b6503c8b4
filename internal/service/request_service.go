package service

import (
	"context"
	"errors"
	"html"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/microcosm-cc/bluemonday"
	"github.com/proofpage/internal/db"
	"gorm.io/gorm"
)

// RequestService 处理访客通过 /r/:slug 提交的推荐语。
type RequestService struct {
	db        *gorm.DB
	pages     *PageService
	sanitizer *bluemonday.Policy
	onSubmit  func()
}

// RequestInput 是公开的推荐语请求表单。
type RequestInput struct {
	Name        string
	RoleCompany string
	Quote       string
}

// NewRequestService 返回一个新的 RequestService 实例。
func NewRequestService(gdb *gorm.DB) *RequestService {
	return &RequestService{db: gdb, pages: NewPageService(gdb), sanitizer: bluemonday.StrictPolicy()}
}

// OnSubmit 注册每次成功保存提交后执行的回调。
func (s *RequestService) OnSubmit(fn func()) *RequestService {
	s.onSubmit = fn
	return s
}

// clean 去除标记并返回纯文本。
func (s *RequestService) clean(value string) string {
	return strings.TrimSpace(html.UnescapeString(s.sanitizer.Sanitize(strings.TrimSpace(value))))
}

// Submit 为 slug 对应的已发布页面保存一条待审核请求。
func (s *RequestService) Submit(ctx context.Context, pageSlug string, input RequestInput) (*db.TestimonialRequest, error) {
	page, err := s.pages.GetPublishedBySlug(ctx, pageSlug)
	if err != nil {
		return nil, err
	}

	input = RequestInput{
		Name:        s.clean(input.Name),
		RoleCompany: s.clean(input.RoleCompany),
		Quote:       s.clean(input.Quote),
	}
	err = fromValidation(validation.Errors{
		"name": validation.Validate(input.Name,
			validation.Required.Error("Please enter your name."),
			validation.RuneLength(0, 120).Error("Name must be at most 120 characters.")),
		"quote": validation.Validate(input.Quote,
			validation.Required.Error("Please write a short testimonial."),
			validation.RuneLength(0, 2000).Error("Testimonial must be at most 2000 characters.")),
		"role_company": validation.Validate(input.RoleCompany,
			validation.RuneLength(0, 160).Error("Role/company must be at most 160 characters.")),
	}.Filter())
	if err != nil {
		return nil, err
	}

	request := db.TestimonialRequest{
		ProofPageID: page.ID,
		Name:        input.Name,
		RoleCompany: optional(input.RoleCompany),
		Quote:       input.Quote,
		Status:      db.RequestStatusPending,
	}
	if err := s.db.WithContext(ctx).Create(&request).Error; err != nil {
		return nil, persistence("create testimonial request", err)
	}
	if s.onSubmit != nil {
		s.onSubmit()
	}
	return &request, nil
}

// ListPending 返回用户页面的待审核请求，按时间倒序。
func (s *RequestService) ListPending(ctx context.Context, pageID uint) ([]db.TestimonialRequest, error) {
	var requests []db.TestimonialRequest
	err := s.db.WithContext(ctx).
		Where("proof_page_id = ? AND status = ?", pageID, db.RequestStatusPending).
		Order("created_at desc, id desc").
		Find(&requests).Error
	return requests, err
}

func (s *RequestService) getOwned(ctx context.Context, userID, requestID uint) (*db.TestimonialRequest, error) {
	var request db.TestimonialRequest
	err := s.db.WithContext(ctx).
		Joins("JOIN proof_pages ON proof_pages.id = testimonial_requests.proof_page_id").
		Where("testimonial_requests.id = ? AND proof_pages.user_id = ?", requestID, userID).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

// Approve 将待审核请求复制为页面第一个推荐语分区下的推荐语，
// 不存在推荐语分区时在末尾创建一个。
func (s *RequestService) Approve(ctx context.Context, userID, requestID uint) (*db.Testimonial, error) {
	request, err := s.getOwned(ctx, userID, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != db.RequestStatusPending {
		return nil, ErrRequestNotPending
	}

	tx := s.db.WithContext(ctx)

	var section db.ProofSection
	err = tx.Where("proof_page_id = ? AND type = ?", request.ProofPageID, db.SectionTypeTestimonial).
		Order("position asc").
		Limit(1).
		Find(&section).Error
	if err != nil {
		return nil, err
	}
	if section.ID == 0 {
		created, err := appendSection(ctx, s.db, request.ProofPageID, db.SectionTypeTestimonial)
		if err != nil {
			return nil, err
		}
		section = *created
	}

	testimonial := db.Testimonial{
		ProofSectionID: section.ID,
		Name:           request.Name,
		RoleCompany:    request.RoleCompany,
		Quote:          request.Quote,
		AvatarURL:      request.AvatarURL,
	}
	if err := tx.Create(&testimonial).Error; err != nil {
		return nil, persistence("create testimonial", err)
	}

	if err := tx.Model(&db.TestimonialRequest{}).Where("id = ?", request.ID).
		Update("status", db.RequestStatusApproved).Error; err != nil {
		return nil, persistence("approve testimonial request", err)
	}
	return &testimonial, nil
}

// Reject 将请求标记为已拒绝。
func (s *RequestService) Reject(ctx context.Context, userID, requestID uint) error {
	request, err := s.getOwned(ctx, userID, requestID)
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Model(&db.TestimonialRequest{}).Where("id = ?", request.ID).
		Update("status", db.RequestStatusRejected).Error
	return persistence("reject testimonial request", err)
}
