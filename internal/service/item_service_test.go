package service

import (
	"context"
	"errors"
	"testing"

	"github.com/proofpage/internal/db"
)

func TestTestimonialLifecycle(t *testing.T) {
	gdb := setupServiceTestDB(t)
	user := seedUser(t, gdb, "ana@example.com")
	seedPage(t, gdb, user, false)
	section := seedSection(t, gdb, user, db.SectionTypeTestimonial)

	svc := NewItemService(gdb)
	ctx := context.Background()
	item, err := svc.CreateTestimonial(ctx, user.ID, section.ID, TestimonialInput{Name: " Bo ", Quote: "Great work", RoleCompany: ""})
	if err != nil {
		t.Fatalf("CreateTestimonial returned error: %v", err)
	}
	if item.Name != "Bo" || item.RoleCompany != nil {
		t.Fatalf("unexpected testimonial: %+v", item)
	}

	if err := svc.UpdateTestimonial(ctx, user.ID, item.ID, TestimonialInput{Name: "Bo", RoleCompany: "CTO, Acme", Quote: "Excellent"}); err != nil {
		t.Fatalf("UpdateTestimonial returned error: %v", err)
	}
	updated, err := svc.GetTestimonial(ctx, user.ID, item.ID)
	if err != nil {
		t.Fatalf("GetTestimonial returned error: %v", err)
	}
	if updated.Quote != "Excellent" || deref(updated.RoleCompany) != "CTO, Acme" {
		t.Fatalf("update not persisted: %+v", updated)
	}

	if err := svc.DeleteTestimonial(ctx, user.ID, item.ID); err != nil {
		t.Fatalf("DeleteTestimonial returned error: %v", err)
	}
	if _, err := svc.GetTestimonial(ctx, user.ID, item.ID); !errors.Is(err, ErrTestimonialNotFound) {
		t.Fatalf("expected ErrTestimonialNotFound, got %v", err)
	}
}

func TestCreateTestimonialRequiresQuote(t *testing.T) {
	gdb := setupServiceTestDB(t)
	user := seedUser(t, gdb, "ana@example.com")
	seedPage(t, gdb, user, false)
	section := seedSection(t, gdb, user, db.SectionTypeTestimonial)

	_, err := NewItemService(gdb).CreateTestimonial(context.Background(), user.ID, section.ID, TestimonialInput{Name: "Bo"})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "quote" {
		t.Fatalf("expected quote ValidationError, got %v", err)
	}
}

func TestItemsRejectWrongSectionType(t *testing.T) {
	gdb := setupServiceTestDB(t)
	user := seedUser(t, gdb, "ana@example.com")
	seedPage(t, gdb, user, false)
	section := seedSection(t, gdb, user, db.SectionTypeTestimonial)

	_, err := NewItemService(gdb).CreateMetric(context.Background(), user.ID, section.ID, MetricInput{Label: "Clients", Value: "40"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestItemsAreScopedToOwner(t *testing.T) {
	gdb := setupServiceTestDB(t)
	owner := seedUser(t, gdb, "owner@example.com")
	seedPage(t, gdb, owner, false)
	section := seedSection(t, gdb, owner, db.SectionTypeWorkExample)

	svc := NewItemService(gdb)
	ctx := context.Background()
	work, err := svc.CreateWorkExample(ctx, owner.ID, section.ID, WorkExampleInput{Description: "Redesign", MetricText: "+30% signups"})
	if err != nil {
		t.Fatalf("CreateWorkExample returned error: %v", err)
	}

	intruder := seedUser(t, gdb, "intruder@example.com")
	seedPage(t, gdb, intruder, false)

	if _, err := svc.GetWorkExample(ctx, intruder.ID, work.ID); !errors.Is(err, ErrWorkExampleNotFound) {
		t.Fatalf("expected ErrWorkExampleNotFound, got %v", err)
	}
	if err := svc.DeleteWorkExample(ctx, intruder.ID, work.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on foreign delete, got %v", err)
	}
	if _, err := svc.CreateWorkExample(ctx, intruder.ID, section.ID, WorkExampleInput{Description: "x"}); !errors.Is(err, ErrSectionNotFound) {
		t.Fatalf("expected ErrSectionNotFound on foreign section, got %v", err)
	}
	if _, err := svc.GetWorkExample(ctx, owner.ID, work.ID); err != nil {
		t.Fatalf("owner lost access: %v", err)
	}
}

func TestMetricUpdate(t *testing.T) {
	gdb := setupServiceTestDB(t)
	user := seedUser(t, gdb, "ana@example.com")
	seedPage(t, gdb, user, false)
	section := seedSection(t, gdb, user, db.SectionTypeMetric)

	svc := NewItemService(gdb)
	ctx := context.Background()
	metric, err := svc.CreateMetric(ctx, user.ID, section.ID, MetricInput{Label: "Projects", Value: "12"})
	if err != nil {
		t.Fatalf("CreateMetric returned error: %v", err)
	}
	if err := svc.UpdateMetric(ctx, user.ID, metric.ID, MetricInput{Label: "Projects", Value: ""}); err == nil {
		t.Fatal("expected empty value to be rejected")
	}
	if err := svc.UpdateMetric(ctx, user.ID, metric.ID, MetricInput{Label: "Projects", Value: "15"}); err != nil {
		t.Fatalf("UpdateMetric returned error: %v", err)
	}
	got, err := svc.GetMetric(ctx, user.ID, metric.ID)
	if err != nil {
		t.Fatalf("GetMetric returned error: %v", err)
	}
	if got.Value != "15" {
		t.Fatalf("expected value 15, got %s", got.Value)
	}
}
