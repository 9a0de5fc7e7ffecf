package utils

import (
	"strings"
	"testing"
)

type usernameProbe struct {
	Username string `validate:"required,username"`
}

type slugProbe struct {
	Slug string `validate:"required,slug"`
}

func TestUsernameRule(t *testing.T) {
	tests := []struct {
		name     string
		username string
		valid    bool
	}{
		{"plain", "reader", true},
		{"with allowed symbols", "user.name@host+x-1", true},
		{"underscore", "some_user", true},
		{"reserved me", "me", false},
		{"reserved ME", "ME", false},
		{"reserved mE", "mE", false},
		{"contains me is fine", "mexico", true},
		{"space", "user name", false},
		{"exclamation", "user!", false},
		{"too long", strings.Repeat("a", 151), false},
		{"exactly 150", strings.Repeat("a", 150), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(usernameProbe{Username: tt.username})
			if tt.valid && len(errs) > 0 {
				t.Errorf("username %q rejected: %v", tt.username, errs)
			}
			if !tt.valid && len(errs) == 0 {
				t.Errorf("username %q accepted", tt.username)
			}
		})
	}
}

func TestSlugRule(t *testing.T) {
	tests := []struct {
		slug  string
		valid bool
	}{
		{"movie", true},
		{"sci-fi", true},
		{"under_score", true},
		{"CAPS123", true},
		{"with space", false},
		{"sla/sh", false},
		{"dot.ted", false},
	}

	for _, tt := range tests {
		errs := ValidateStruct(slugProbe{Slug: tt.slug})
		if tt.valid && len(errs) > 0 {
			t.Errorf("slug %q rejected: %v", tt.slug, errs)
		}
		if !tt.valid && len(errs) == 0 {
			t.Errorf("slug %q accepted", tt.slug)
		}
	}
}

func TestFormatValidationErrors(t *testing.T) {
	msg := FormatValidationErrors(map[string]string{"Username": "This field is required"})
	if !strings.Contains(msg, "Username") || !strings.Contains(msg, "required") {
		t.Errorf("unexpected message: %q", msg)
	}

	if FormatValidationErrors(nil) != "" {
		t.Error("nil map should format to empty string")
	}
}
