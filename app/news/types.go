package news

// providerName is stamped on every normalized article.
const providerName = "Currents API"

// Cache keys for the reference datasets.
const (
	cacheKeyLanguages  = "languages"
	cacheKeyRegions    = "regions"
	cacheKeyCategories = "categories"
)

// Article is the normalized output shape for a news item.
type Article struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Author      string   `json:"author"`
	Image       *string  `json:"image"`
	Language    string   `json:"language"`
	Category    []string `json:"category"`
	Published   string   `json:"published"`
	Source      string   `json:"source"`
}

// SearchRequest carries the optional search filters. Empty fields are
// not forwarded to the provider.
type SearchRequest struct {
	Keywords  string
	Language  string
	Country   string
	Category  string
	StartDate string
	EndDate   string
}

// SearchParams echoes the filters back in search results.
type SearchParams struct {
	Keywords  string `json:"keywords"`
	Language  string `json:"language"`
	Country   string `json:"country"`
	Category  string `json:"category"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type SearchResult struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"total_results"`
	Articles     []Article    `json:"articles"`
	SearchParams SearchParams `json:"search_params"`
}

type LatestNewsResult struct {
	Status       string    `json:"status"`
	Language     string    `json:"language"`
	TotalResults int       `json:"total_results"`
	Articles     []Article `json:"articles"`
	RetrievedAt  string    `json:"retrieved_at"`
}

type LanguagesResult struct {
	Status         string            `json:"status"`
	Source         string            `json:"source"`
	Languages      map[string]string `json:"languages"`
	TotalLanguages int               `json:"total_languages"`
}

type RegionsResult struct {
	Status       string            `json:"status"`
	Source       string            `json:"source"`
	Regions      map[string]string `json:"regions"`
	TotalRegions int               `json:"total_regions"`
}

type CategoriesResult struct {
	Status          string   `json:"status"`
	Source          string   `json:"source"`
	Categories      []string `json:"categories"`
	TotalCategories int      `json:"total_categories"`
}

// Configuration is the settings block reported by the status check.
type Configuration struct {
	APIKeySet       bool   `json:"api_key_set"`
	APIKeyMasked    string `json:"api_key_masked,omitempty"`
	BaseURL         string `json:"base_url"`
	Timeout         int    `json:"timeout"`
	DefaultLanguage string `json:"default_language"`
	MaxResults      int    `json:"max_results"`
}

type TestResult struct {
	EndpointTested   string `json:"endpoint_tested"`
	ResponseReceived bool   `json:"response_received"`
	ArticlesCount    int    `json:"articles_count"`
}

type CacheStatus struct {
	LanguagesCached  bool `json:"languages_cached"`
	RegionsCached    bool `json:"regions_cached"`
	CategoriesCached bool `json:"categories_cached"`
}

type StatusResult struct {
	Status        string        `json:"status"`
	Message       string        `json:"message"`
	Configuration Configuration `json:"configuration"`
	TestResult    TestResult    `json:"test_result"`
	CacheStatus   CacheStatus   `json:"cache_status"`
}

// ErrorResult is the uniform error-tagged shape every operation falls
// back to. Configuration and Troubleshooting are only set by the
// status check.
type ErrorResult struct {
	Status          string         `json:"status"`
	Message         string         `json:"message"`
	Configuration   *Configuration `json:"configuration,omitempty"`
	Troubleshooting []string       `json:"troubleshooting,omitempty"`
}
