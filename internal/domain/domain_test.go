package domain

import (
	"strings"
	"testing"
)

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello, World!", "hello-world"},
		{"  Leading and trailing  ", "leading-and-trailing"},
		{"Next.js 14 & the App Router", "next-js-14-the-app-router"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
		{"", ""},
		{"CSS", "css"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := GenerateSlug(tt.input); got != tt.want {
				t.Errorf("GenerateSlug(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestGenerateSlug_Deterministic(t *testing.T) {
	first := GenerateSlug("Mastering TypeScript: Advanced Types")
	for i := 0; i < 5; i++ {
		if got := GenerateSlug("Mastering TypeScript: Advanced Types"); got != first {
			t.Fatalf("GenerateSlug not deterministic: %q != %q", got, first)
		}
	}
}

func TestCalculateReadingTime(t *testing.T) {
	tests := []struct {
		name  string
		words int
		want  int
	}{
		{"empty content", 0, 1},
		{"one word", 1, 1},
		{"exactly one minute", 200, 1},
		{"just over one minute", 201, 2},
		{"four hundred words", 400, 2},
		{"one thousand words", 1000, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := strings.TrimSpace(strings.Repeat("word ", tt.words))
			if got := CalculateReadingTime(content); got != tt.want {
				t.Errorf("CalculateReadingTime(%d words) = %d, want %d", tt.words, got, tt.want)
			}
		})
	}
}

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) < 14 {
			t.Fatalf("NewID() = %q, too short", id)
		}
		if seen[id] {
			t.Fatalf("NewID() returned duplicate %q", id)
		}
		seen[id] = true
	}
}

func TestIsValidPostStatus(t *testing.T) {
	tests := []struct {
		status string
		valid  bool
	}{
		{"draft", true},
		{"published", true},
		{"scheduled", false},
		{"", false},
		{"DRAFT", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := IsValidPostStatus(tt.status); got != tt.valid {
				t.Errorf("IsValidPostStatus(%q) = %v, want %v", tt.status, got, tt.valid)
			}
		})
	}
}

func TestIsValidCommentStatus(t *testing.T) {
	tests := []struct {
		status string
		valid  bool
	}{
		{"approved", true},
		{"pending", true},
		{"spam", true},
		{"deleted", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := IsValidCommentStatus(tt.status); got != tt.valid {
				t.Errorf("IsValidCommentStatus(%q) = %v, want %v", tt.status, got, tt.valid)
			}
		})
	}
}

func TestValidRoles(t *testing.T) {
	expectedRoles := []string{"Administrator", "Editor", "Author", "Subscriber"}

	if len(ValidRoles) != len(expectedRoles) {
		t.Errorf("ValidRoles has %d elements, expected %d", len(ValidRoles), len(expectedRoles))
	}

	for _, role := range expectedRoles {
		if !IsValidRole(role) {
			t.Errorf("ValidRoles missing %q", role)
		}
	}
	if IsValidRole("admin") {
		t.Errorf("IsValidRole(%q) = true, want false", "admin")
	}
}

func TestIsValidUserStatus(t *testing.T) {
	if !IsValidUserStatus("active") || !IsValidUserStatus("inactive") {
		t.Error("expected active and inactive to be valid")
	}
	if IsValidUserStatus("banned") {
		t.Error("expected banned to be invalid")
	}
}

func TestPost_HasTag(t *testing.T) {
	p := Post{Tags: []string{"Next.js", "React"}}

	if !p.HasTag("react") {
		t.Error("HasTag should match case-insensitively")
	}
	if p.HasTag("Vue") {
		t.Error("HasTag matched a tag the post does not carry")
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.General.SiteName == "" {
		t.Error("default site name should not be empty")
	}
	if s.Content.PostsPerPage <= 0 {
		t.Errorf("PostsPerPage = %d, want > 0", s.Content.PostsPerPage)
	}
	if !s.Content.ModerateComments {
		t.Error("comments should be moderated by default")
	}
}
