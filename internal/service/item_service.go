package service

import (
	"context"
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/proofpage/internal/db"
	"gorm.io/gorm"
)

// ItemService 管理推荐语、作品与指标。所有方法都限定在调用者的页面内，
// 其他用户页面下的记录一律视为不存在。
type ItemService struct {
	db       *gorm.DB
	sections *SectionService
}

// TestimonialInput 是控制台中推荐语的表单。
type TestimonialInput struct {
	Name        string
	RoleCompany string
	Quote       string
}

// WorkExampleInput 是控制台中作品的表单。
type WorkExampleInput struct {
	LinkURL     string
	Description string
	MetricText  string
}

// MetricInput 是控制台中指标的表单。
type MetricInput struct {
	Label string
	Value string
}

// NewItemService 返回一个新的 ItemService 实例。
func NewItemService(gdb *gorm.DB) *ItemService {
	return &ItemService{db: gdb, sections: NewSectionService(gdb)}
}

// ownedScope 将对 table 的查询限定在 userID 页面下的记录。
func ownedScope(table string, userID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.
			Joins("JOIN proof_sections ON proof_sections.id = "+table+".proof_section_id").
			Joins("JOIN proof_pages ON proof_pages.id = proof_sections.proof_page_id").
			Where("proof_pages.user_id = ?", userID)
	}
}

func (s *ItemService) sectionOfType(ctx context.Context, userID, sectionID uint, sectionType string) (*db.ProofSection, error) {
	section, err := s.sections.Get(ctx, userID, sectionID)
	if err != nil {
		return nil, err
	}
	if section.Type != sectionType {
		return nil, invalid("proof_section_id", "That section does not accept this kind of item.")
	}
	return section, nil
}

func validateTestimonial(input TestimonialInput) error {
	return fromValidation(validation.Errors{
		"name":  validation.Validate(input.Name, validation.Required.Error("Testimonial name is required.")),
		"quote": validation.Validate(input.Quote, validation.Required.Error("Testimonial quote is required.")),
	}.Filter())
}

// CreateTestimonial 在推荐语分区中新增一条推荐语。
func (s *ItemService) CreateTestimonial(ctx context.Context, userID, sectionID uint, input TestimonialInput) (*db.Testimonial, error) {
	input = TestimonialInput{
		Name:        strings.TrimSpace(input.Name),
		RoleCompany: strings.TrimSpace(input.RoleCompany),
		Quote:       strings.TrimSpace(input.Quote),
	}
	if err := validateTestimonial(input); err != nil {
		return nil, err
	}
	section, err := s.sectionOfType(ctx, userID, sectionID, db.SectionTypeTestimonial)
	if err != nil {
		return nil, err
	}

	item := db.Testimonial{
		ProofSectionID: section.ID,
		Name:           input.Name,
		RoleCompany:    optional(input.RoleCompany),
		Quote:          input.Quote,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, persistence("create testimonial", err)
	}
	return &item, nil
}

// GetTestimonial 返回属于 userID 的推荐语。
func (s *ItemService) GetTestimonial(ctx context.Context, userID, id uint) (*db.Testimonial, error) {
	var item db.Testimonial
	err := s.db.WithContext(ctx).Scopes(ownedScope("testimonials", userID)).
		Where("testimonials.id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestimonialNotFound
		}
		return nil, err
	}
	return &item, nil
}

// UpdateTestimonial 保存推荐语的文本字段。
func (s *ItemService) UpdateTestimonial(ctx context.Context, userID, id uint, input TestimonialInput) error {
	item, err := s.GetTestimonial(ctx, userID, id)
	if err != nil {
		return err
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Quote = strings.TrimSpace(input.Quote)
	if err := validateTestimonial(input); err != nil {
		return err
	}

	item.Name = input.Name
	item.RoleCompany = optional(input.RoleCompany)
	item.Quote = input.Quote
	return persistence("update testimonial", s.db.WithContext(ctx).Save(item).Error)
}

// DeleteTestimonial 删除推荐语。
func (s *ItemService) DeleteTestimonial(ctx context.Context, userID, id uint) error {
	item, err := s.GetTestimonial(ctx, userID, id)
	if err != nil {
		return err
	}
	return persistence("delete testimonial", s.db.WithContext(ctx).Delete(&db.Testimonial{}, item.ID).Error)
}

func validateWorkExample(input WorkExampleInput) error {
	return fromValidation(validation.Errors{
		"description": validation.Validate(input.Description, validation.Required.Error("Work example description is required.")),
	}.Filter())
}

// CreateWorkExample 在 work_example 分区中新增一个作品。
func (s *ItemService) CreateWorkExample(ctx context.Context, userID, sectionID uint, input WorkExampleInput) (*db.WorkExample, error) {
	input.Description = strings.TrimSpace(input.Description)
	if err := validateWorkExample(input); err != nil {
		return nil, err
	}
	section, err := s.sectionOfType(ctx, userID, sectionID, db.SectionTypeWorkExample)
	if err != nil {
		return nil, err
	}

	item := db.WorkExample{
		ProofSectionID: section.ID,
		LinkURL:        optional(input.LinkURL),
		Description:    input.Description,
		MetricText:     optional(input.MetricText),
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, persistence("create work example", err)
	}
	return &item, nil
}

// GetWorkExample 返回属于 userID 的作品。
func (s *ItemService) GetWorkExample(ctx context.Context, userID, id uint) (*db.WorkExample, error) {
	var item db.WorkExample
	err := s.db.WithContext(ctx).Scopes(ownedScope("work_examples", userID)).
		Where("work_examples.id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWorkExampleNotFound
		}
		return nil, err
	}
	return &item, nil
}

// UpdateWorkExample 保存作品的文本字段。
func (s *ItemService) UpdateWorkExample(ctx context.Context, userID, id uint, input WorkExampleInput) error {
	item, err := s.GetWorkExample(ctx, userID, id)
	if err != nil {
		return err
	}
	input.Description = strings.TrimSpace(input.Description)
	if err := validateWorkExample(input); err != nil {
		return err
	}

	item.LinkURL = optional(input.LinkURL)
	item.Description = input.Description
	item.MetricText = optional(input.MetricText)
	return persistence("update work example", s.db.WithContext(ctx).Save(item).Error)
}

// DeleteWorkExample 删除作品。
func (s *ItemService) DeleteWorkExample(ctx context.Context, userID, id uint) error {
	item, err := s.GetWorkExample(ctx, userID, id)
	if err != nil {
		return err
	}
	return persistence("delete work example", s.db.WithContext(ctx).Delete(&db.WorkExample{}, item.ID).Error)
}

func validateMetric(input MetricInput) error {
	return fromValidation(validation.Errors{
		"label": validation.Validate(input.Label, validation.Required.Error("Metric label is required.")),
		"value": validation.Validate(input.Value, validation.Required.Error("Metric value is required.")),
	}.Filter())
}

// CreateMetric 在指标分区中新增一项指标。
func (s *ItemService) CreateMetric(ctx context.Context, userID, sectionID uint, input MetricInput) (*db.Metric, error) {
	input = MetricInput{Label: strings.TrimSpace(input.Label), Value: strings.TrimSpace(input.Value)}
	if err := validateMetric(input); err != nil {
		return nil, err
	}
	section, err := s.sectionOfType(ctx, userID, sectionID, db.SectionTypeMetric)
	if err != nil {
		return nil, err
	}

	item := db.Metric{ProofSectionID: section.ID, Label: input.Label, Value: input.Value}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, persistence("create metric", err)
	}
	return &item, nil
}

// GetMetric 返回属于 userID 的指标。
func (s *ItemService) GetMetric(ctx context.Context, userID, id uint) (*db.Metric, error) {
	var item db.Metric
	err := s.db.WithContext(ctx).Scopes(ownedScope("metrics", userID)).
		Where("metrics.id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMetricNotFound
		}
		return nil, err
	}
	return &item, nil
}

// UpdateMetric 保存指标。
func (s *ItemService) UpdateMetric(ctx context.Context, userID, id uint, input MetricInput) error {
	item, err := s.GetMetric(ctx, userID, id)
	if err != nil {
		return err
	}
	input = MetricInput{Label: strings.TrimSpace(input.Label), Value: strings.TrimSpace(input.Value)}
	if err := validateMetric(input); err != nil {
		return err
	}

	item.Label = input.Label
	item.Value = input.Value
	return persistence("update metric", s.db.WithContext(ctx).Save(item).Error)
}

// DeleteMetric 删除指标。
func (s *ItemService) DeleteMetric(ctx context.Context, userID, id uint) error {
	item, err := s.GetMetric(ctx, userID, id)
	if err != nil {
		return err
	}
	return persistence("delete metric", s.db.WithContext(ctx).Delete(&db.Metric{}, item.ID).Error)
}
