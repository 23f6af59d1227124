// Package config resolves runtime configuration from the environment, with
// optional .env loading for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// DefaultNearbyLimit bounds the nearby-providers panel when the environment
// does not override it.
const DefaultNearbyLimit = 4

// Config holds process-wide settings.
type Config struct {
	// Port the HTTP server listens on.
	Port string
	// ProjectID is the Firebase project backing auth, store and realtime.
	ProjectID string
	// CredentialsFile is an optional path to a service account JSON; when
	// empty, application default credentials apply.
	CredentialsFile string
	// NearbyLimit is the maximum number of providers returned by the
	// proximity ranker when the request does not specify a bound.
	NearbyLimit int
}

// Load reads configuration from the environment. A .env file, if present, is
// merged first; its absence is not an error.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getenv("PORT", "8080"),
		ProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		CredentialsFile: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		NearbyLimit:     getenvInt("NEARBY_LIMIT", DefaultNearbyLimit),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
