package auth

import (
	"errors"
	"testing"
)

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"valid", "Bearer abc123", "abc123", nil},
		{"case insensitive scheme", "bearer abc123", "abc123", nil},
		{"missing header", "", "", ErrNoToken},
		{"wrong scheme", "Basic abc123", "", ErrInvalidToken},
		{"no token", "Bearer", "", ErrInvalidToken},
		{"extra parts", "Bearer a b", "", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected error %v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected token %q, got %q", tt.want, got)
			}
		})
	}
}

func TestCategorizeAuthError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrTokenExpired, "token_expired"},
		{ErrTokenRevoked, "token_revoked"},
		{ErrUserDisabled, "user_disabled"},
		{ErrCertificateFetch, "certificate_fetch_failed"},
		{ErrInvalidToken, "invalid_token"},
		{errors.New("other"), "unknown"},
	}
	for _, tt := range tests {
		if got := categorizeAuthError(tt.err); got != tt.want {
			t.Errorf("categorizeAuthError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
