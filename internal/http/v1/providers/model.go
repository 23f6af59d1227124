package providers

import "github.com/homefix/homefix-api/internal/platform/timeutil"

// Summary is one provider card on the search page.
type Summary struct {
	ID          string `json:"id" doc:"Provider user identifier"`
	Name        string `json:"name" doc:"Display name" example:"Ahmad Khan"`
	Phone       string `json:"phone" doc:"Contact phone"`
	Category    string `json:"category" doc:"Comma-joined category names" example:"Plumber, Drainage"`
	Distance    string `json:"distance" doc:"Distance label" example:"Nearby"`
	Description string `json:"description" doc:"Service description"`
	Available   bool   `json:"available" doc:"Currently accepting jobs"`
}

// RankedProvider is a provider annotated with its approximate distance.
type RankedProvider struct {
	ID         string  `json:"id" doc:"Provider user identifier"`
	Name       string  `json:"name" doc:"Display name"`
	Category   string  `json:"category" doc:"Comma-joined category names"`
	DistanceKm float64 `json:"distanceKm" doc:"Approximate distance in kilometers" example:"2.4"`
	Available  bool    `json:"available" doc:"Currently accepting jobs"`
}

// MapMarker is an available, located provider on the map view.
type MapMarker struct {
	ID          string   `json:"id" doc:"Provider user identifier"`
	Name        string   `json:"name" doc:"Display name"`
	Phone       string   `json:"phone" doc:"Contact phone"`
	Description string   `json:"description" doc:"Service description"`
	Lat         float64  `json:"lat" doc:"Latitude"`
	Lng         float64  `json:"lng" doc:"Longitude"`
	Available   bool     `json:"available" doc:"Currently accepting jobs"`
	Categories  []string `json:"categories" doc:"Category names"`
}

// PublicProfile is a provider's public page.
type PublicProfile struct {
	ID              string        `json:"id" doc:"Provider user identifier"`
	Name            string        `json:"name" doc:"Display name"`
	Phone           string        `json:"phone" doc:"Contact phone"`
	AvatarURL       string        `json:"avatarUrl,omitempty" doc:"Avatar image URL"`
	Description     string        `json:"description" doc:"Service description"`
	ExperienceYears int           `json:"experienceYears" doc:"Years of experience"`
	Available       bool          `json:"available" doc:"Currently accepting jobs"`
	Categories      []string      `json:"categories" doc:"Category names"`
	MemberSince     timeutil.Time `json:"memberSince" doc:"Details row creation time"`
}
