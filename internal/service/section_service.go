package service

import (
	"context"
	"errors"
	"strings"

	"github.com/proofpage/internal/db"
	"gorm.io/gorm"
)

const (
	DirectionUp   = "up"
	DirectionDown = "down"

	// swapSentinel 在相邻分区占用其位置期间临时停放分区。
	swapSentinel = -1
)

// SectionService 管理证明页中有序的分区。
type SectionService struct {
	db *gorm.DB
}

// NewSectionService 返回一个新的 SectionService 实例。
func NewSectionService(gdb *gorm.DB) *SectionService {
	return &SectionService{db: gdb}
}

// Create 在用户页面最后一个分区之后追加 sectionType 类型的分区。
func (s *SectionService) Create(ctx context.Context, userID uint, sectionType string) (*db.ProofSection, error) {
	sectionType = strings.TrimSpace(sectionType)
	if sectionType == "" {
		sectionType = db.SectionTypeTestimonial
	}
	if !db.ValidSectionType(sectionType) {
		return nil, invalid("type", "Unknown section type.")
	}

	page, err := NewPageService(s.db).GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return appendSection(ctx, s.db, page.ID, sectionType)
}

// appendSection 在 max(position)+1 处插入分区。
func appendSection(ctx context.Context, gdb *gorm.DB, pageID uint, sectionType string) (*db.ProofSection, error) {
	var last int
	if err := gdb.WithContext(ctx).Model(&db.ProofSection{}).
		Where("proof_page_id = ?", pageID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&last).Error; err != nil {
		return nil, err
	}

	section := db.ProofSection{ProofPageID: pageID, Type: sectionType, Position: last + 1}
	if err := gdb.WithContext(ctx).Create(&section).Error; err != nil {
		return nil, persistence("create section", err)
	}
	return &section, nil
}

// Get 返回属于用户页面的分区。
func (s *SectionService) Get(ctx context.Context, userID, sectionID uint) (*db.ProofSection, error) {
	var section db.ProofSection
	err := s.db.WithContext(ctx).
		Joins("JOIN proof_pages ON proof_pages.id = proof_sections.proof_page_id").
		Where("proof_sections.id = ? AND proof_pages.user_id = ?", sectionID, userID).
		First(&section).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	return &section, nil
}

// Move 将分区与 direction 方向上的相邻分区交换。
//
// position 在页面内唯一，因此交换需要三次写入：先把分区停到哨兵位置，
// 再把相邻分区移入其原位置，最后把分区移到相邻分区的旧位置。
// 这些写入不在事务中，中途失败时保持当时的顺序，并以 PersistenceError 返回。
func (s *SectionService) Move(ctx context.Context, userID, sectionID uint, direction string) error {
	if direction != DirectionUp && direction != DirectionDown {
		return invalid("direction", "Direction must be up or down.")
	}

	current, err := s.Get(ctx, userID, sectionID)
	if err != nil {
		return err
	}

	tx := s.db.WithContext(ctx)
	query := tx.Where("proof_page_id = ?", current.ProofPageID)
	if direction == DirectionDown {
		query = query.Where("position > ?", current.Position).Order("position asc")
	} else {
		query = query.Where("position < ?", current.Position).Order("position desc")
	}

	var neighbor db.ProofSection
	if err := query.Limit(1).First(&neighbor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEdgeOfList
		}
		return err
	}

	if err := setPosition(tx, current.ID, swapSentinel); err != nil {
		return persistence("park section", err)
	}
	if err := setPosition(tx, neighbor.ID, current.Position); err != nil {
		return persistence("move neighbour section", err)
	}
	if err := setPosition(tx, current.ID, neighbor.Position); err != nil {
		return persistence("move section", err)
	}
	return nil
}

func setPosition(tx *gorm.DB, sectionID uint, position int) error {
	return tx.Model(&db.ProofSection{}).Where("id = ?", sectionID).Update("position", position).Error
}

// Delete 删除分区及其下的全部条目。
func (s *SectionService) Delete(ctx context.Context, userID, sectionID uint) error {
	section, err := s.Get(ctx, userID, sectionID)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&db.Testimonial{}, &db.WorkExample{}, &db.Metric{}} {
			if err := tx.Where("proof_section_id = ?", section.ID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&db.ProofSection{}, section.ID).Error
	})
	return persistence("delete section", err)
}

// MoveMessage 返回按 direction 移动成功后的提示。
func MoveMessage(direction string) string {
	if direction == DirectionDown {
		return "Section moved down."
	}
	return "Section moved up."
}
