package db

import "time"

// EventCTAClick 记录分享页 CTA 按钮的点击。
const EventCTAClick = "cta_click"

// PageView 是只追加的浏览记录，仅用于计数。
type PageView struct {
	ID          uint `gorm:"primaryKey"`
	ProofPageID uint `gorm:"index;not null"`
	CreatedAt   time.Time
}

// TableName 指定自定义表名。
func (PageView) TableName() string {
	return "page_views"
}

// PageEvent 是只追加的事件记录，目前只有 cta_click。
type PageEvent struct {
	ID          uint   `gorm:"primaryKey"`
	ProofPageID uint   `gorm:"index:idx_page_events_page_type;not null"`
	EventType   string `gorm:"size:32;index:idx_page_events_page_type;not null"`
	CreatedAt   time.Time
}

// TableName 指定自定义表名。
func (PageEvent) TableName() string {
	return "proof_page_events"
}
