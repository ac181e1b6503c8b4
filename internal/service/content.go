package service

import (
	"context"

	"github.com/proofpage/internal/db"
	"gorm.io/gorm"
)

// SectionContent 是一个分区及其对应类型的条目。
type SectionContent struct {
	Section      db.ProofSection
	Testimonials []db.Testimonial
	WorkExamples []db.WorkExample
	Metrics      []db.Metric
}

// PageContent 是证明页按顺序排列的内容。
type PageContent struct {
	Sections []SectionContent
}

// Testimonials 按分区顺序返回全部推荐语。
func (c PageContent) Testimonials() []db.Testimonial {
	var out []db.Testimonial
	for _, s := range c.Sections {
		out = append(out, s.Testimonials...)
	}
	return out
}

// WorkExamples 按分区顺序返回全部作品。
func (c PageContent) WorkExamples() []db.WorkExample {
	var out []db.WorkExample
	for _, s := range c.Sections {
		out = append(out, s.WorkExamples...)
	}
	return out
}

// Metrics 按分区顺序返回全部指标。
func (c PageContent) Metrics() []db.Metric {
	var out []db.Metric
	for _, s := range c.Sections {
		out = append(out, s.Metrics...)
	}
	return out
}

// LoadContent 按 position 读取页面的分区及其条目。
func LoadContent(ctx context.Context, gdb *gorm.DB, pageID uint) (PageContent, error) {
	tx := gdb.WithContext(ctx)

	var sections []db.ProofSection
	if err := tx.Where("proof_page_id = ?", pageID).Order("position asc").Find(&sections).Error; err != nil {
		return PageContent{}, err
	}

	content := PageContent{Sections: make([]SectionContent, len(sections))}
	if len(sections) == 0 {
		return content, nil
	}

	index := make(map[uint]int, len(sections))
	ids := make([]uint, len(sections))
	for i, section := range sections {
		content.Sections[i].Section = section
		index[section.ID] = i
		ids[i] = section.ID
	}

	var testimonials []db.Testimonial
	if err := tx.Where("proof_section_id IN ?", ids).Order("created_at asc, id asc").Find(&testimonials).Error; err != nil {
		return PageContent{}, err
	}
	for _, item := range testimonials {
		i := index[item.ProofSectionID]
		content.Sections[i].Testimonials = append(content.Sections[i].Testimonials, item)
	}

	var works []db.WorkExample
	if err := tx.Where("proof_section_id IN ?", ids).Order("created_at asc, id asc").Find(&works).Error; err != nil {
		return PageContent{}, err
	}
	for _, item := range works {
		i := index[item.ProofSectionID]
		content.Sections[i].WorkExamples = append(content.Sections[i].WorkExamples, item)
	}

	var metrics []db.Metric
	if err := tx.Where("proof_section_id IN ?", ids).Order("created_at asc, id asc").Find(&metrics).Error; err != nil {
		return PageContent{}, err
	}
	for _, item := range metrics {
		i := index[item.ProofSectionID]
		content.Sections[i].Metrics = append(content.Sections[i].Metrics, item)
	}

	return content, nil
}
