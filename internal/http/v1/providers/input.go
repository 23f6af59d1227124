package providers

// ListInput defines query parameters for the provider search page.
type ListInput struct {
	Category string `query:"category" doc:"Filter by category slug" example:"plumber"`
}

// NearbyInput defines query parameters for proximity ranking.
type NearbyInput struct {
	Lat   float64 `query:"lat" required:"true" minimum:"-90" maximum:"90" doc:"Requester latitude" example:"33.6844"`
	Lng   float64 `query:"lng" required:"true" minimum:"-180" maximum:"180" doc:"Requester longitude" example:"73.0479"`
	Limit int     `query:"limit" minimum:"0" maximum:"50" doc:"Result bound; 0 uses the server default"`
}

// MapInput has no parameters.
type MapInput struct{}

// GetInput identifies a provider's public page.
type GetInput struct {
	ID string `path:"id" doc:"Provider user identifier"`
}

// DetailsUpdateInput is the provider setup payload. Category links are
// replaced wholesale.
type DetailsUpdateInput struct {
	Body struct {
		Description     string   `json:"description" maxLength:"2000" doc:"Service description"`
		ExperienceYears int      `json:"experienceYears" minimum:"0" maximum:"80" doc:"Years of experience"`
		Lat             *float64 `json:"lat,omitempty" minimum:"-90" maximum:"90" doc:"Service location latitude"`
		Lng             *float64 `json:"lng,omitempty" minimum:"-180" maximum:"180" doc:"Service location longitude"`
		CategoryIDs     []string `json:"categoryIds" doc:"Declared category ids"`
	}
}

// AvailabilityInput sets or toggles the online flag.
type AvailabilityInput struct {
	Body struct {
		Available *bool `json:"available,omitempty" doc:"Desired state; omit to toggle"`
	}
}
