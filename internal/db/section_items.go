package db

import "time"

// Testimonial 属于 testimonial 类型的分区。
type Testimonial struct {
	ID             uint    `gorm:"primaryKey"`
	ProofSectionID uint    `gorm:"index;not null"`
	Name           string  `gorm:"not null"`
	RoleCompany    *string `gorm:"column:role_company"`
	Quote          string  `gorm:"type:text;not null"`
	AvatarURL      *string `gorm:"column:avatar_url"`
	AvatarThumbURL *string `gorm:"column:avatar_thumb_url"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName 指定自定义表名。
func (Testimonial) TableName() string {
	return "testimonials"
}

// WorkExample 属于 work_example 类型的分区。
type WorkExample struct {
	ID             uint    `gorm:"primaryKey"`
	ProofSectionID uint    `gorm:"index;not null"`
	LinkURL        *string `gorm:"column:link_url"`
	Description    string  `gorm:"type:text;not null"`
	MetricText     *string `gorm:"column:metric_text"`
	ImageURL       *string `gorm:"column:image_url"`
	ImageThumbURL  *string `gorm:"column:image_thumb_url"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName 指定自定义表名。
func (WorkExample) TableName() string {
	return "work_examples"
}

// Metric 属于 metric 类型的分区，label 与 value 均为自由文本。
type Metric struct {
	ID             uint   `gorm:"primaryKey"`
	ProofSectionID uint   `gorm:"index;not null"`
	Label          string `gorm:"not null"`
	Value          string `gorm:"not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName 指定自定义表名。
func (Metric) TableName() string {
	return "metrics"
}
