package db

import "time"

const (
	PageStatusDraft     = "draft"
	PageStatusPublished = "published"

	ThemeLight = "light"
	ThemeDark  = "dark"

	DefaultAccentColor = "#3B82F6"
)

// ProofPage 是用户唯一的公开证明页。
type ProofPage struct {
	ID          uint    `gorm:"primaryKey"`
	UserID      uint    `gorm:"uniqueIndex;not null"`
	Title       string  `gorm:"not null"`
	Headline    string  `gorm:"not null;default:''"`
	Bio         *string `gorm:"type:text"`
	Slug        string  `gorm:"size:80;uniqueIndex;not null"`
	Status      string  `gorm:"size:16;not null;default:draft"`
	Theme       string  `gorm:"size:16;not null;default:light"`
	AccentColor string  `gorm:"size:7;not null;default:'#3B82F6'"`
	CTAEnabled  bool    `gorm:"column:cta_enabled;not null;default:false"`
	CTALabel    *string `gorm:"column:cta_label"`
	CTAURL      *string `gorm:"column:cta_url"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName 指定自定义表名。
func (ProofPage) TableName() string {
	return "proof_pages"
}

// IsPublished 判断页面是否对外公开。
func (p ProofPage) IsPublished() bool {
	return p.Status == PageStatusPublished
}

// BioText 返回去掉空指针后的简介。
func (p ProofPage) BioText() string {
	if p.Bio == nil {
		return ""
	}
	return *p.Bio
}
