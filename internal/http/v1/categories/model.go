package categories

// Category is a service category as rendered in the browse grid.
type Category struct {
	ID   string `json:"id" doc:"Category identifier"`
	Name string `json:"name" doc:"Display name" example:"Plumber"`
	Slug string `json:"slug" doc:"URL-safe identifier" example:"plumber"`
	Icon string `json:"icon" doc:"Icon name" example:"wrench"`
}
