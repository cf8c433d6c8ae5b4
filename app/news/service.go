package news

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/araddon/dateparse"

	"github.com/lysyi3m/currents-mcp/app/cache"
	"github.com/lysyi3m/currents-mcp/app/currents"
)

// Service composes the configuration, TTL cache and HTTP transport
// into the externally callable operations. Every operation returns a
// status-tagged result and never propagates an error to its caller.
type Service struct {
	client          *currents.Client
	cache           *cache.Cache
	key             currents.KeyProvider
	defaultLanguage string
	maxResults      int
}

func NewService(client *currents.Client, c *cache.Cache, key currents.KeyProvider, defaultLanguage string, maxResults int) *Service {
	return &Service{
		client:          client,
		cache:           c,
		key:             key,
		defaultLanguage: defaultLanguage,
		maxResults:      maxResults,
	}
}

// SearchNews searches for articles matching the optional filters. Date
// filters are validated before any network call.
func (s *Service) SearchNews(ctx context.Context, req SearchRequest) any {
	if req.StartDate != "" && !validDate(req.StartDate) {
		return errorMessage("Invalid start_date format. Use ISO 8601: YYYY-MM-DDTHH:MM:SS+00:00")
	}
	if req.EndDate != "" && !validDate(req.EndDate) {
		return errorMessage("Invalid end_date format. Use ISO 8601: YYYY-MM-DDTHH:MM:SS+00:00")
	}

	params := url.Values{}
	setNonEmpty(params, "keywords", req.Keywords)
	setNonEmpty(params, "language", req.Language)
	setNonEmpty(params, "country", req.Country)
	setNonEmpty(params, "category", req.Category)
	setNonEmpty(params, "start_date", req.StartDate)
	setNonEmpty(params, "end_date", req.EndDate)

	var resp currents.NewsResponse
	if err := s.client.Get(ctx, "search", params, &resp); err != nil {
		return errorResult(err)
	}

	if resp.Status != "ok" {
		return errorMessage("No results found or API error occurred")
	}

	articles := normalizeArticles(resp.News, s.maxResults)

	return SearchResult{
		Status:       "success",
		TotalResults: len(articles),
		Articles:     articles,
		SearchParams: SearchParams{
			Keywords:  req.Keywords,
			Language:  req.Language,
			Country:   req.Country,
			Category:  req.Category,
			StartDate: req.StartDate,
			EndDate:   req.EndDate,
		},
	}
}

// GetLatestNews returns the most recent articles for a language,
// falling back to the configured default.
func (s *Service) GetLatestNews(ctx context.Context, language string) any {
	lang := language
	if lang == "" {
		lang = s.defaultLanguage
	}

	params := url.Values{}
	params.Set("language", lang)

	var resp currents.NewsResponse
	if err := s.client.Get(ctx, "latest-news", params, &resp); err != nil {
		return errorResult(err)
	}

	if resp.Status != "ok" {
		return errorMessage("Failed to retrieve latest news")
	}

	articles := normalizeArticles(resp.News, s.maxResults)

	return LatestNewsResult{
		Status:       "success",
		Language:     lang,
		TotalResults: len(articles),
		Articles:     articles,
		RetrievedAt:  time.Now().Format(time.RFC3339),
	}
}

// GetAvailableLanguages returns the supported language codes,
// cache-first.
func (s *Service) GetAvailableLanguages(ctx context.Context) any {
	if cached, ok := s.cache.Get(cacheKeyLanguages); ok {
		languages := cached.(map[string]string)
		return LanguagesResult{
			Status:         "success",
			Source:         "cache",
			Languages:      languages,
			TotalLanguages: len(languages),
		}
	}

	var resp currents.LanguagesResponse
	if err := s.client.Get(ctx, "available/languages", nil, &resp); err != nil {
		return errorResult(err)
	}

	if resp.Status != "ok" {
		return errorMessage("Failed to retrieve supported languages")
	}

	s.cache.Set(cacheKeyLanguages, resp.Languages)

	return LanguagesResult{
		Status:         "success",
		Source:         "api",
		Languages:      resp.Languages,
		TotalLanguages: len(resp.Languages),
	}
}

// GetAvailableRegions returns the supported country/region codes,
// cache-first.
func (s *Service) GetAvailableRegions(ctx context.Context) any {
	if cached, ok := s.cache.Get(cacheKeyRegions); ok {
		regions := cached.(map[string]string)
		return RegionsResult{
			Status:       "success",
			Source:       "cache",
			Regions:      regions,
			TotalRegions: len(regions),
		}
	}

	var resp currents.RegionsResponse
	if err := s.client.Get(ctx, "available/regions", nil, &resp); err != nil {
		return errorResult(err)
	}

	if resp.Status != "ok" {
		return errorMessage("Failed to retrieve supported regions")
	}

	s.cache.Set(cacheKeyRegions, resp.Regions)

	return RegionsResult{
		Status:       "success",
		Source:       "api",
		Regions:      resp.Regions,
		TotalRegions: len(resp.Regions),
	}
}

// GetAvailableCategories returns the supported news categories,
// cache-first.
func (s *Service) GetAvailableCategories(ctx context.Context) any {
	if cached, ok := s.cache.Get(cacheKeyCategories); ok {
		categories := cached.([]string)
		return CategoriesResult{
			Status:          "success",
			Source:          "cache",
			Categories:      categories,
			TotalCategories: len(categories),
		}
	}

	var resp currents.CategoriesResponse
	if err := s.client.Get(ctx, "available/category", nil, &resp); err != nil {
		return errorResult(err)
	}

	if resp.Status != "ok" {
		return errorMessage("Failed to retrieve supported categories")
	}

	s.cache.Set(cacheKeyCategories, resp.Categories)

	return CategoriesResult{
		Status:          "success",
		Source:          "api",
		Categories:      resp.Categories,
		TotalCategories: len(resp.Categories),
	}
}

// CheckAPIStatus reports configuration, a live connectivity probe and
// per-key cache validity. It never raises; every failure is folded
// into the error-tagged result with troubleshooting hints.
func (s *Service) CheckAPIStatus(ctx context.Context) any {
	apiKey := s.key()
	if apiKey == "" {
		return ErrorResult{
			Status:        "error",
			Message:       "CURRENTS_API_KEY environment variable not set",
			Configuration: s.configuration(apiKey),
			Troubleshooting: []string{
				"Set CURRENTS_API_KEY environment variable",
				"Get free API key from https://currentsapi.services",
				"Ensure API key has proper permissions",
			},
		}
	}

	params := url.Values{}
	params.Set("language", "en")

	var resp currents.NewsResponse
	if err := s.client.Get(ctx, "latest-news", params, &resp); err != nil {
		return ErrorResult{
			Status:  "error",
			Message: fmt.Sprintf("API status check failed: %s", errorText(err)),
			Troubleshooting: []string{
				"Check internet connection",
				"Verify API key is correct",
				"Check if API service is operational",
				"Ensure no firewall blocking the connection",
			},
		}
	}

	if resp.Status != "ok" {
		return ErrorResult{
			Status:        "error",
			Message:       "API test failed",
			Configuration: s.configuration(apiKey),
		}
	}

	return StatusResult{
		Status:        "success",
		Message:       "API connection successful",
		Configuration: *s.configuration(apiKey),
		TestResult: TestResult{
			EndpointTested:   "latest-news",
			ResponseReceived: true,
			ArticlesCount:    len(resp.News),
		},
		CacheStatus: CacheStatus{
			LanguagesCached:  s.cache.IsValid(cacheKeyLanguages),
			RegionsCached:    s.cache.IsValid(cacheKeyRegions),
			CategoriesCached: s.cache.IsValid(cacheKeyCategories),
		},
	}
}

func (s *Service) configuration(apiKey string) *Configuration {
	c := &Configuration{
		APIKeySet:       apiKey != "",
		BaseURL:         currents.BaseURL,
		Timeout:         int(s.client.Timeout().Seconds()),
		DefaultLanguage: s.defaultLanguage,
		MaxResults:      s.maxResults,
	}
	if apiKey != "" {
		c.APIKeyMasked = maskKey(apiKey)
	}
	return c
}

func maskKey(key string) string {
	if len(key) > 8 {
		return key[:8] + "..."
	}
	return "***"
}

func validDate(value string) bool {
	_, err := dateparse.ParseAny(value)
	return err == nil
}

func setNonEmpty(params url.Values, key, value string) {
	if value != "" {
		params.Set(key, value)
	}
}

// errorResult maps any failure from the access layer into the uniform
// error-tagged shape. Classified client errors carry their own
// user-facing messages.
func errorResult(err error) ErrorResult {
	return errorMessage(errorText(err))
}

func errorMessage(message string) ErrorResult {
	return ErrorResult{Status: "error", Message: message}
}

func errorText(err error) string {
	var apiErr *currents.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
