package service

import (
	"context"
	"errors"
	"testing"

	"github.com/proofpage/internal/db"
)

func TestEnsureCreatesDraftPage(t *testing.T) {
	gdb := setupServiceTestDB(t)
	user := seedUser(t, gdb, "Jane.Doe@Example.com")

	svc := NewPageService(gdb)
	page, err := svc.Ensure(context.Background(), user)
	if err != nil {
		t.Fatalf("Ensure returned error: %v", err)
	}

	if page.Slug != "janedoe" {
		t.Fatalf("expected slug derived from email, got %q", page.Slug)
	}
	if page.Title != "jane.doe@example.com" {
		t.Fatalf("expected email as default title, got %q", page.Title)
	}
	if page.Headline != "Freelancer" || page.Status != db.PageStatusDraft || page.Theme != db.ThemeLight {
		t.Fatalf("unexpected defaults: %+v", page)
	}
	if page.AccentColor != db.DefaultAccentColor {
		t.Fatalf("expected default accent color, got %s", page.AccentColor)
	}

	again, err := svc.Ensure(context.Background(), user)
	if err != nil {
		t.Fatalf("second Ensure returned error: %v", err)
	}
	if again.ID != page.ID {
		t.Fatalf("expected Ensure to return the existing page, got %d and %d", page.ID, again.ID)
	}
}

func TestEnsureAvoidsTakenSlug(t *testing.T) {
	gdb := setupServiceTestDB(t)
	first := seedPage(t, gdb, seedUser(t, gdb, "sam@one.com"), false)
	second := seedPage(t, gdb, seedUser(t, gdb, "sam@two.com"), false)

	if first.Slug != "sam" {
		t.Fatalf("expected bare slug for first page, got %s", first.Slug)
	}
	if second.Slug == first.Slug {
		t.Fatal("expected second page to get a different slug")
	}
}

func TestUpdatePublishesPage(t *testing.T) {
	gdb := setupServiceTestDB(t)
	user := seedUser(t, gdb, "ana@example.com")
	seedPage(t, gdb, user, false)

	svc := NewPageService(gdb)
	page, msg, err := svc.Update(context.Background(), user.ID, PageInput{
		Title:       " Ana ",
		Headline:    "Brand designer",
		Bio:         "I design logos.",
		Slug:        "Ana-Designs",
		Status:      db.PageStatusPublished,
		Theme:       db.ThemeDark,
		AccentColor: "#10b981",
		CTAEnabled:  true,
		CTALabel:    "Book a call",
		CTAURL:      "ana@example.com",
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if msg != "Proof page saved and published." {
		t.Fatalf("unexpected message %q", msg)
	}
	if page.Title != "Ana" || page.Slug != "ana-designs" || page.BioText() != "I design logos." {
		t.Fatalf("fields not normalised: %+v", page)
	}

	published, err := svc.GetPublishedBySlug(context.Background(), "ana-designs")
	if err != nil {
		t.Fatalf("GetPublishedBySlug returned error: %v", err)
	}
	if published.ID != page.ID {
		t.Fatalf("expected page %d, got %d", page.ID, published.ID)
	}
}

func TestUpdateDraftMessage(t *testing.T) {
	gdb := setupServiceTestDB(t)
	user := seedUser(t, gdb, "ana@example.com")
	page := seedPage(t, gdb, user, false)

	_, msg, err := NewPageService(gdb).Update(context.Background(), user.ID, PageInput{Title: "Ana", Slug: page.Slug})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if msg != "Proof page saved as draft." {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestUpdateRejectsInvalidAccentColor(t *testing.T) {
	gdb := setupServiceTestDB(t)
	user := seedUser(t, gdb, "ana@example.com")
	page := seedPage(t, gdb, user, false)

	_, _, err := NewPageService(gdb).Update(context.Background(), user.ID, PageInput{Slug: page.Slug, AccentColor: "blue"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Field != "accent_color" || verr.Message != "Accent color must be a valid hex value like #3B82F6." {
		t.Fatalf("unexpected validation error: %+v", verr)
	}
}

func TestUpdateRejectsTakenSlug(t *testing.T) {
	gdb := setupServiceTestDB(t)
	other := seedPage(t, gdb, seedUser(t, gdb, "taken@example.com"), false)
	user := seedUser(t, gdb, "ana@example.com")
	seedPage(t, gdb, user, false)

	_, _, err := NewPageService(gdb).Update(context.Background(), user.ID, PageInput{Slug: other.Slug})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "slug" {
		t.Fatalf("expected slug ValidationError, got %v", err)
	}
}

func TestUpdateRequiresCTAURLWhenEnabled(t *testing.T) {
	gdb := setupServiceTestDB(t)
	user := seedUser(t, gdb, "ana@example.com")
	page := seedPage(t, gdb, user, false)

	_, _, err := NewPageService(gdb).Update(context.Background(), user.ID, PageInput{Slug: page.Slug, CTAEnabled: true})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "cta_url" {
		t.Fatalf("expected cta_url ValidationError, got %v", err)
	}
}

func TestGetPublishedBySlugHidesDrafts(t *testing.T) {
	gdb := setupServiceTestDB(t)
	page := seedPage(t, gdb, seedUser(t, gdb, "ana@example.com"), false)

	_, err := NewPageService(gdb).GetPublishedBySlug(context.Background(), page.Slug)
	if !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected ErrPageNotFound to wrap ErrNotFound")
	}
}

func TestUpdateKeepsExplicitCTASchemes(t *testing.T) {
	gdb := setupServiceTestDB(t)
	user := seedUser(t, gdb, "ana@example.com")
	page := seedPage(t, gdb, user, true)
	svc := NewPageService(gdb)

	for _, target := range []string{"mailto:hi@alex.dev", "tel:+1 555 1234", "MAILTO:hi@alex.dev"} {
		saved, _, err := svc.Update(context.Background(), user.ID, PageInput{
			Title:       "Ana",
			Slug:        page.Slug,
			Status:      db.PageStatusPublished,
			Theme:       db.ThemeLight,
			AccentColor: db.DefaultAccentColor,
			CTAEnabled:  true,
			CTAURL:      target,
		})
		if err != nil {
			t.Fatalf("Update with CTA %q returned error: %v", target, err)
		}
		if got := NormalizeCTATarget(deref(saved.CTAURL)); got != target {
			t.Fatalf("expected CTA target %q, got %q", target, got)
		}
	}
}
