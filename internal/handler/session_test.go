package handler

import "testing"

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                    "/dashboard",
		"/dashboard":          "/dashboard",
		"/p/jane":             "/p/jane",
		"//evil.test":         "/dashboard",
		"/\\evil.test":        "/dashboard",
		"https://evil.test/x": "/dashboard",
	}
	for input, want := range tests {
		if got := safeNext(input); got != want {
			t.Errorf("safeNext(%q) = %q, want %q", input, got, want)
		}
	}
}
