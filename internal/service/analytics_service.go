package service

import (
	"context"
	"errors"

	"github.com/proofpage/internal/db"
	"gorm.io/gorm"
)

// AnalyticsRecorder 在写入数据库的同时接收计数增量。
type AnalyticsRecorder interface {
	PageViewed()
	CTAClicked()
}

type noopRecorder struct{}

func (noopRecorder) PageViewed() {}
func (noopRecorder) CTAClicked() {}

// AnalyticsService 负责记录证明页的浏览与 CTA 点击。
type AnalyticsService struct {
	db       *gorm.DB
	recorder AnalyticsRecorder
}

// PageCounts 汇总单个页面的计数。
type PageCounts struct {
	Views     int64
	CTAClicks int64
}

// NewAnalyticsService 创建 AnalyticsService；recorder 为空时不上报指标。
func NewAnalyticsService(gdb *gorm.DB, recorder AnalyticsRecorder) *AnalyticsService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &AnalyticsService{db: gdb, recorder: recorder}
}

// RecordView 追加一条浏览记录。
func (s *AnalyticsService) RecordView(ctx context.Context, pageID uint) error {
	if pageID == 0 {
		return errors.New("invalid page id")
	}
	if err := s.db.WithContext(ctx).Create(&db.PageView{ProofPageID: pageID}).Error; err != nil {
		return persistence("record page view", err)
	}
	s.recorder.PageViewed()
	return nil
}

// RecordCTAClick 追加一条 cta_click 事件。
func (s *AnalyticsService) RecordCTAClick(ctx context.Context, pageID uint) error {
	if pageID == 0 {
		return errors.New("invalid page id")
	}
	event := db.PageEvent{ProofPageID: pageID, EventType: db.EventCTAClick}
	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		return persistence("record cta click", err)
	}
	s.recorder.CTAClicked()
	return nil
}

// Counts 返回页面的浏览数与 CTA 点击数。
func (s *AnalyticsService) Counts(ctx context.Context, pageID uint) (PageCounts, error) {
	var counts PageCounts
	tx := s.db.WithContext(ctx)
	if err := tx.Model(&db.PageView{}).Where("proof_page_id = ?", pageID).Count(&counts.Views).Error; err != nil {
		return counts, err
	}
	if err := tx.Model(&db.PageEvent{}).
		Where("proof_page_id = ? AND event_type = ?", pageID, db.EventCTAClick).
		Count(&counts.CTAClicks).Error; err != nil {
		return counts, err
	}
	return counts, nil
}
