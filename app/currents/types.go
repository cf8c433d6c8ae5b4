package currents

// BaseURL is the Currents API v1 base path.
const BaseURL = "https://api.currentsapi.services/v1"

// Article is a raw news item exactly as the provider returns it.
type Article struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Author      string   `json:"author"`
	Image       string   `json:"image"`
	Language    string   `json:"language"`
	Category    []string `json:"category"`
	Published   string   `json:"published"`
}

// NewsResponse is the payload of the search and latest-news endpoints.
type NewsResponse struct {
	Status string    `json:"status"`
	News   []Article `json:"news"`
}

// LanguagesResponse maps language names to ISO codes.
type LanguagesResponse struct {
	Status    string            `json:"status"`
	Languages map[string]string `json:"languages"`
}

// RegionsResponse maps region names to country codes.
type RegionsResponse struct {
	Status  string            `json:"status"`
	Regions map[string]string `json:"regions"`
}

// CategoriesResponse lists the supported category identifiers.
type CategoriesResponse struct {
	Status     string   `json:"status"`
	Categories []string `json:"categories"`
}
