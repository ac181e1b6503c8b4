package db

import "time"

const (
	SectionTypeTestimonial = "testimonial"
	SectionTypeWorkExample = "work_example"
	SectionTypeMetric      = "metric"
)

// ProofSection 是证明页中按 position 排序的分区。
// (proof_page_id, position) 唯一，交换位置时需要借助哨兵值。
type ProofSection struct {
	ID          uint   `gorm:"primaryKey"`
	ProofPageID uint   `gorm:"not null;uniqueIndex:idx_proof_sections_page_position"`
	Type        string `gorm:"size:32;not null"`
	Position    int    `gorm:"not null;uniqueIndex:idx_proof_sections_page_position"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName 指定自定义表名。
func (ProofSection) TableName() string {
	return "proof_sections"
}

// ValidSectionType 判断分区类型是否受支持。
func ValidSectionType(value string) bool {
	switch value {
	case SectionTypeTestimonial, SectionTypeWorkExample, SectionTypeMetric:
		return true
	}
	return false
}
