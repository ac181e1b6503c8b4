package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/proofpage/internal/db"
	"gorm.io/gorm"
)

const testPassword = "password123"

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := db.Open(filepath.Join(t.TempDir(), "proofpage.db"), db.Options{Silent: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close(gdb)
	})
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, email string) *db.User {
	t.Helper()
	user, err := NewAuthService(gdb).SignUp(context.Background(), email, testPassword)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}
	return user
}

// seedPage 创建用户的页面，并按需发布。
func seedPage(t *testing.T, gdb *gorm.DB, user *db.User, published bool) *db.ProofPage {
	t.Helper()
	page, err := NewPageService(gdb).Ensure(context.Background(), user)
	if err != nil {
		t.Fatalf("failed to ensure page: %v", err)
	}
	if published {
		page.Status = db.PageStatusPublished
		if err := gdb.Save(page).Error; err != nil {
			t.Fatalf("failed to publish page: %v", err)
		}
	}
	return page
}

func seedSection(t *testing.T, gdb *gorm.DB, user *db.User, sectionType string) *db.ProofSection {
	t.Helper()
	section, err := NewSectionService(gdb).Create(context.Background(), user.ID, sectionType)
	if err != nil {
		t.Fatalf("failed to create %s section: %v", sectionType, err)
	}
	return section
}

func sectionPositions(t *testing.T, gdb *gorm.DB, pageID uint) map[uint]int {
	t.Helper()
	var sections []db.ProofSection
	if err := gdb.Where("proof_page_id = ?", pageID).Find(&sections).Error; err != nil {
		t.Fatalf("failed to load sections: %v", err)
	}
	positions := make(map[uint]int, len(sections))
	for _, s := range sections {
		positions[s.ID] = s.Position
	}
	return positions
}
