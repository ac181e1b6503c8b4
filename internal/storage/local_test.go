package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Local {
	t.Helper()
	return NewLocal(t.TempDir(), "proof-media", "https://proof.example/", NewSigner("test-secret"))
}

func TestLocalUploadAndDownload(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Upload(ctx, "u1/p1/a.png", []byte("one"), UploadOptions{}); err != nil {
		t.Fatalf("Upload returned error: %v", err)
	}
	if err := store.Upload(ctx, "u1/p1/a.png", []byte("two"), UploadOptions{}); !errors.Is(err, ErrObjectExists) {
		t.Fatalf("expected ErrObjectExists without upsert, got %v", err)
	}
	if err := store.Upload(ctx, "u1/p1/a.png", []byte("three"), UploadOptions{Upsert: true}); err != nil {
		t.Fatalf("upsert returned error: %v", err)
	}

	data, err := store.Download(ctx, "u1/p1/a.png")
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if string(data) != "three" {
		t.Fatalf("expected overwritten content, got %q", data)
	}

	if _, err := store.Download(ctx, "u1/p1/missing.png"); !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("expected ErrObjectNotFound, got %v", err)
	}
}

func TestLocalRejectsTraversal(t *testing.T) {
	store := newTestStore(t)
	for _, p := range []string{"", "  ", "../secret", "a/../../b", `a\b`} {
		if _, err := store.Download(context.Background(), p); !errors.Is(err, ErrInvalidPath) {
			t.Fatalf("expected ErrInvalidPath for %q, got %v", p, err)
		}
	}
}

func TestSignedURLRoundTrip(t *testing.T) {
	store := newTestStore(t)
	raw, err := store.SignedURL("u1/p1/my photo.jpg", time.Hour, &Transform{Width: 320})
	if err != nil {
		t.Fatalf("SignedURL returned error: %v", err)
	}
	if !strings.HasPrefix(raw, "https://proof.example/media/proof-media/u1/p1/my%20photo.jpg?token=") {
		t.Fatalf("unexpected signed url %q", raw)
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("signed url does not parse: %v", err)
	}
	grant, err := store.Signer().Verify(parsed.Query().Get("token"))
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if grant.Path != "u1/p1/my photo.jpg" || grant.Bucket != "proof-media" {
		t.Fatalf("unexpected grant %+v", grant)
	}
	if grant.Transform == nil || grant.Transform.Width != 320 {
		t.Fatalf("expected transform to survive signing, got %+v", grant.Transform)
	}
}

func TestSignerRejectsExpiredAndForeignTokens(t *testing.T) {
	signer := NewSigner("secret-a")
	past := time.Now().Add(-2 * time.Hour)
	signer.now = func() time.Time { return past }
	token, err := signer.Sign(Grant{Bucket: "b", Path: "p"}, time.Minute)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}
	signer.now = time.Now
	if _, err := signer.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}

	fresh, err := signer.Sign(Grant{Bucket: "b", Path: "p"}, time.Minute)
	if err != nil {
		t.Fatalf("Sign returned error: %v", err)
	}
	if _, err := NewSigner("secret-b").Verify(fresh); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected token signed with another key to be rejected, got %v", err)
	}
}
