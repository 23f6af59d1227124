package categories

// ListData is the response body for the category list.
type ListData struct {
	Categories []Category `json:"categories" doc:"All service categories"`
}

// ListOutput wraps the category list response.
type ListOutput struct {
	Body ListData
}
