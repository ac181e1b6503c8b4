package service

import (
	"context"

	"github.com/proofpage/internal/db"
	"github.com/proofpage/internal/share"
	"github.com/proofpage/internal/strength"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Dashboard 是控制台页面渲染所需的全部数据。
type Dashboard struct {
	Page      *db.ProofPage
	Content   PageContent
	Counts    PageCounts
	Pending   []db.TestimonialRequest
	Strength  strength.Result
	Summary   string
	PublicURL string
	ShareURL  string
}

// DashboardService 组装控制台视图。
type DashboardService struct {
	db        *gorm.DB
	pages     *PageService
	analytics *AnalyticsService
	requests  *RequestService
	baseURL   string
}

// NewDashboardService 返回一个新的 DashboardService 实例。
func NewDashboardService(gdb *gorm.DB, analytics *AnalyticsService, requests *RequestService, baseURL string) *DashboardService {
	return &DashboardService{
		db:        gdb,
		pages:     NewPageService(gdb),
		analytics: analytics,
		requests:  requests,
		baseURL:   baseURL,
	}
}

// Load 确保用户的页面存在，并并发加载内容、计数与待审核请求。
func (s *DashboardService) Load(ctx context.Context, user *db.User) (*Dashboard, error) {
	page, err := s.pages.Ensure(ctx, user)
	if err != nil {
		return nil, err
	}

	view := &Dashboard{
		Page:      page,
		PublicURL: PublicURL(s.baseURL, page.Slug),
		ShareURL:  ShareURL(s.baseURL, page.Slug),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		content, err := LoadContent(gctx, s.db, page.ID)
		view.Content = content
		return err
	})
	g.Go(func() error {
		counts, err := s.analytics.Counts(gctx, page.ID)
		view.Counts = counts
		return err
	})
	g.Go(func() error {
		pending, err := s.requests.ListPending(gctx, page.ID)
		view.Pending = pending
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view.Strength = strength.Score(StrengthInput(page, view.Content))
	view.Summary = share.BuildSummary(SummaryInput(page, view.Content, view.ShareURL))
	return view, nil
}

// StrengthInput 统计评分所需的条目数量。
// 只统计类型匹配的分区下的条目。
func StrengthInput(page *db.ProofPage, content PageContent) strength.Input {
	in := strength.Input{
		Title:     page.Title,
		Headline:  page.Headline,
		Bio:       page.BioText(),
		Published: page.IsPublished(),
	}
	for _, section := range content.Sections {
		switch section.Section.Type {
		case db.SectionTypeTestimonial:
			in.Testimonials += len(section.Testimonials)
		case db.SectionTypeWorkExample:
			in.WorkExamples += len(section.WorkExamples)
			for _, work := range section.WorkExamples {
				if trimmedNonEmpty(work.MetricText) {
					in.WorkExamplesWithMetrics++
				}
			}
		}
	}
	return in
}

// SummaryInput 选取前两个作品指标和页面的第一条推荐语。
func SummaryInput(page *db.ProofPage, content PageContent, shareURL string) share.SummaryInput {
	in := share.SummaryInput{
		Title:    page.Title,
		Headline: page.Headline,
		Bio:      page.BioText(),
		ShareURL: shareURL,
	}
	for _, work := range content.WorkExamples() {
		if trimmedNonEmpty(work.MetricText) {
			in.Metrics = append(in.Metrics, *work.MetricText)
		}
	}
	if testimonials := content.Testimonials(); len(testimonials) > 0 {
		first := testimonials[0]
		in.Testimonial = &share.Testimonial{
			Quote:       first.Quote,
			Name:        first.Name,
			RoleCompany: deref(first.RoleCompany),
		}
	}
	return in
}

// PublicURL 是完整公开页的绝对地址。
func PublicURL(baseURL, pageSlug string) string {
	return baseURL + "/p/" + pageSlug
}

// ShareURL 是精简分享页的绝对地址。
func ShareURL(baseURL, pageSlug string) string {
	return baseURL + "/p/" + pageSlug + "/share"
}

func trimmedNonEmpty(value *string) bool {
	return optional(deref(value)) != nil
}
