package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("NEARBY_LIMIT", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.NearbyLimit != DefaultNearbyLimit {
		t.Errorf("expected default nearby limit %d, got %d", DefaultNearbyLimit, cfg.NearbyLimit)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("NEARBY_LIMIT", "10")
	t.Setenv("FIREBASE_PROJECT_ID", "homefix-test")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.NearbyLimit != 10 {
		t.Errorf("expected nearby limit 10, got %d", cfg.NearbyLimit)
	}
	if cfg.ProjectID != "homefix-test" {
		t.Errorf("expected project homefix-test, got %s", cfg.ProjectID)
	}
}

func TestLoadRejectsInvalidLimit(t *testing.T) {
	t.Setenv("NEARBY_LIMIT", "not-a-number")
	if cfg := Load(); cfg.NearbyLimit != DefaultNearbyLimit {
		t.Errorf("expected fallback limit, got %d", cfg.NearbyLimit)
	}

	t.Setenv("NEARBY_LIMIT", "-3")
	if cfg := Load(); cfg.NearbyLimit != DefaultNearbyLimit {
		t.Errorf("expected fallback limit for negative value, got %d", cfg.NearbyLimit)
	}
}
