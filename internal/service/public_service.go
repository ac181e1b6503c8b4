package service

import (
	"context"

	"github.com/proofpage/internal/db"
	"gorm.io/gorm"
)

const (
	shareMetricLimit = 4
	shareWorkLimit   = 3
)

// TestimonialView 是可直接渲染的推荐语。
type TestimonialView struct {
	db.Testimonial
	AvatarSrc string
}

// WorkExampleView 是可直接渲染的作品。
type WorkExampleView struct {
	db.WorkExample
	ImageSrc string
}

// SectionView 是可直接渲染的分区。
type SectionView struct {
	Type         string
	Testimonials []TestimonialView
	WorkExamples []WorkExampleView
	Metrics      []db.Metric
}

// PublicPage 是完整的公开页。
type PublicPage struct {
	Page     *db.ProofPage
	Sections []SectionView
}

// SharePage 是精简的分享视图。
type SharePage struct {
	Page         *db.ProofPage
	Metrics      []db.Metric
	Testimonial  *TestimonialView
	WorkExamples []WorkExampleView
}

// PublicService 为访客加载已发布的页面。
type PublicService struct {
	db    *gorm.DB
	pages *PageService
	media *MediaService
}

// NewPublicService 返回一个新的 PublicService 实例。
func NewPublicService(gdb *gorm.DB, media *MediaService) *PublicService {
	return &PublicService{db: gdb, pages: NewPageService(gdb), media: media}
}

func (s *PublicService) testimonialView(item db.Testimonial) TestimonialView {
	return TestimonialView{Testimonial: item, AvatarSrc: s.media.AvatarURL(item)}
}

func (s *PublicService) workExampleView(item db.WorkExample) WorkExampleView {
	return WorkExampleView{WorkExample: item, ImageSrc: s.media.WorkImageURL(item)}
}

// Full 按顺序加载 slug 对应已发布页面的全部分区。
func (s *PublicService) Full(ctx context.Context, pageSlug string) (*PublicPage, error) {
	page, err := s.pages.GetPublishedBySlug(ctx, pageSlug)
	if err != nil {
		return nil, err
	}
	content, err := LoadContent(ctx, s.db, page.ID)
	if err != nil {
		return nil, err
	}

	view := &PublicPage{Page: page, Sections: make([]SectionView, 0, len(content.Sections))}
	for _, section := range content.Sections {
		sv := SectionView{Type: section.Section.Type}
		switch section.Section.Type {
		case db.SectionTypeTestimonial:
			for _, item := range section.Testimonials {
				sv.Testimonials = append(sv.Testimonials, s.testimonialView(item))
			}
		case db.SectionTypeWorkExample:
			for _, item := range section.WorkExamples {
				sv.WorkExamples = append(sv.WorkExamples, s.workExampleView(item))
			}
		case db.SectionTypeMetric:
			sv.Metrics = section.Metrics
		}
		view.Sections = append(view.Sections, sv)
	}
	return view, nil
}

// Share 加载精简视图：最多四项指标、最新的一条推荐语
// 以及最新的三个作品。
func (s *PublicService) Share(ctx context.Context, pageSlug string) (*SharePage, error) {
	page, err := s.pages.GetPublishedBySlug(ctx, pageSlug)
	if err != nil {
		return nil, err
	}
	view := &SharePage{Page: page}
	tx := s.db.WithContext(ctx)

	sectionIDs := func(sectionType string) *gorm.DB {
		return tx.Model(&db.ProofSection{}).Select("id").
			Where("proof_page_id = ? AND type = ?", page.ID, sectionType)
	}

	if err := tx.Where("proof_section_id IN (?)", sectionIDs(db.SectionTypeMetric)).
		Order("created_at asc, id asc").Limit(shareMetricLimit).
		Find(&view.Metrics).Error; err != nil {
		return nil, err
	}

	var testimonials []db.Testimonial
	if err := tx.Where("proof_section_id IN (?)", sectionIDs(db.SectionTypeTestimonial)).
		Order("created_at desc, id desc").Limit(1).
		Find(&testimonials).Error; err != nil {
		return nil, err
	}
	if len(testimonials) > 0 {
		tv := s.testimonialView(testimonials[0])
		view.Testimonial = &tv
	}

	var works []db.WorkExample
	if err := tx.Where("proof_section_id IN (?)", sectionIDs(db.SectionTypeWorkExample)).
		Order("created_at desc, id desc").Limit(shareWorkLimit).
		Find(&works).Error; err != nil {
		return nil, err
	}
	for _, item := range works {
		view.WorkExamples = append(view.WorkExamples, s.workExampleView(item))
	}

	return view, nil
}
