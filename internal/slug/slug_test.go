package slug

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]*$`)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "punctuation", input: "Alex Rivera!! UX", want: "alex-rivera-ux"},
		{name: "trim hyphens", input: "  --Hello   World--  ", want: "hello-world"},
		{name: "repeated hyphens", input: "a - - b", want: "a-b"},
		{name: "punctuation only", input: "!!!", want: ""},
		{name: "non ascii dropped", input: "Zoë Ça va", want: "zo-a-va"},
		{name: "email local part", input: "jane.doe", want: "janedoe"},
		{name: "no-break space", input: "Alex\u00a0Rivera", want: "alex-rivera"},
		{name: "vertical tab", input: "Alex\vRivera", want: "alex-rivera"},
		{name: "ideographic space", input: "Alex\u3000Rivera\u2028UX", want: "alex-rivera-ux"},
		{name: "byte order mark", input: "\ufeffAlex Rivera", want: "alex-rivera"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slugify(tt.input); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSlugifyLengthAndAlphabet(t *testing.T) {
	inputs := []string{
		strings.Repeat("abc ", 40),
		strings.Repeat("x", 120),
		"Ünïcödé & symbols ### everywhere",
	}
	for _, input := range inputs {
		got := Slugify(input)
		if len(got) > 50 {
			t.Fatalf("slug %q exceeds 50 characters", got)
		}
		if !slugPattern.MatchString(got) {
			t.Fatalf("slug %q contains invalid characters", got)
		}
	}
}

func TestGenerateReturnsBareSlugWhenFree(t *testing.T) {
	var checked []string
	g := NewGenerator(CheckerFunc(func(_ context.Context, s string) (bool, error) {
		checked = append(checked, s)
		return false, nil
	}))

	got, err := g.Generate(context.Background(), "Alex Rivera!! UX")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "alex-rivera-ux" {
		t.Fatalf("expected bare slug, got %q", got)
	}
	if len(checked) != 1 {
		t.Fatalf("expected a single existence check, got %d", len(checked))
	}
}

func TestGenerateFallsBackForEmptySeed(t *testing.T) {
	g := NewGenerator(CheckerFunc(func(context.Context, string) (bool, error) { return false, nil }))
	got, err := g.Generate(context.Background(), "?!")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != Fallback {
		t.Fatalf("expected %q, got %q", Fallback, got)
	}
}

func TestGenerateAppendsRandomSuffixOnCollision(t *testing.T) {
	taken := map[string]bool{"my-proof": true, "my-proof-7": true}
	suffixes := []int{7, 42}
	g := &Generator{
		Checker: CheckerFunc(func(_ context.Context, s string) (bool, error) { return taken[s], nil }),
		Rand: func(int) int {
			next := suffixes[0]
			suffixes = suffixes[1:]
			return next
		},
		Now: time.Now,
	}

	got, err := g.Generate(context.Background(), "")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if got != "my-proof-42" {
		t.Fatalf("expected my-proof-42, got %q", got)
	}
}

func TestGenerateUsesTimestampAfterTwentyCollisions(t *testing.T) {
	attempts := 0
	now := time.UnixMilli(1700000000123)
	g := &Generator{
		Checker: CheckerFunc(func(context.Context, string) (bool, error) {
			attempts++
			return true, nil
		}),
		Rand: func(int) int { return 1 },
		Now:  func() time.Time { return now },
	}

	got, err := g.Generate(context.Background(), "taken")
	if err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if attempts != 20 {
		t.Fatalf("expected 20 existence checks, got %d", attempts)
	}
	if got != "taken-1700000000123" {
		t.Fatalf("expected timestamp fallback, got %q", got)
	}
}

func TestGeneratePropagatesCheckerError(t *testing.T) {
	boom := errors.New("db down")
	g := NewGenerator(CheckerFunc(func(context.Context, string) (bool, error) { return false, boom }))
	if _, err := g.Generate(context.Background(), "x"); !errors.Is(err, boom) {
		t.Fatalf("expected checker error, got %v", err)
	}
}
