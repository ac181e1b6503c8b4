package db

import "time"

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// TestimonialRequest 是访客公开提交、等待页面所有者审核的推荐语。
type TestimonialRequest struct {
	ID          uint    `gorm:"primaryKey"`
	ProofPageID uint    `gorm:"index;not null"`
	Name        string  `gorm:"not null"`
	RoleCompany *string `gorm:"column:role_company"`
	Quote       string  `gorm:"type:text;not null"`
	AvatarURL   *string `gorm:"column:avatar_url"`
	Status      string  `gorm:"size:16;index;not null;default:pending"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName 指定自定义表名。
func (TestimonialRequest) TableName() string {
	return "testimonial_requests"
}
