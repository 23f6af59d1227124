package providers

// ListData is the response body for the provider search page.
type ListData struct {
	Providers []Summary `json:"providers" doc:"Provider cards"`
}

// ListOutput wraps the search page response.
type ListOutput struct {
	Body ListData
}

// NearbyData is the response body for proximity ranking.
type NearbyData struct {
	Providers []RankedProvider `json:"providers" doc:"Providers ranked by ascending distance"`
}

// NearbyOutput wraps the proximity ranking response.
type NearbyOutput struct {
	Body NearbyData
}

// MapData is the response body for the map view.
type MapData struct {
	Providers []MapMarker `json:"providers" doc:"Available, located providers"`
}

// MapOutput wraps the map view response.
type MapOutput struct {
	Body MapData
}

// GetOutput wraps a provider's public page.
type GetOutput struct {
	Body PublicProfile
}

// AvailabilityData reports the persisted flag after a write.
type AvailabilityData struct {
	Available bool `json:"available" doc:"Persisted availability flag"`
}

// AvailabilityOutput wraps the availability write response.
type AvailabilityOutput struct {
	Body AvailabilityData
}
