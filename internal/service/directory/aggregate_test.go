package directory

import "testing"

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
	}{
		{"no categories", nil, "General"},
		{"empty slice", []string{}, "General"},
		{"only blanks", []string{"", ""}, "General"},
		{"single", []string{"Plumber"}, "Plumber"},
		{"multiple", []string{"Plumber", "Drainage"}, "Plumber, Drainage"},
		{"blanks filtered", []string{"", "Plumber", ""}, "Plumber"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := categoryLabel(tt.names); got != tt.want {
				t.Errorf("categoryLabel(%v) = %q, want %q", tt.names, got, tt.want)
			}
		})
	}
}

func TestDisplayNameFallback(t *testing.T) {
	profiles := map[string]Profile{
		"u1": {UserID: "u1", FullName: "Ahmad Khan"},
		"u2": {UserID: "u2"},
	}
	if got := displayName(profiles, "u1"); got != "Ahmad Khan" {
		t.Errorf("expected resolved name, got %q", got)
	}
	if got := displayName(profiles, "u2"); got != "Unknown" {
		t.Errorf("expected Unknown for blank name, got %q", got)
	}
	if got := displayName(profiles, "missing"); got != "Unknown" {
		t.Errorf("expected Unknown for missing profile, got %q", got)
	}
}
