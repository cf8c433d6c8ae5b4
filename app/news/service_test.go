package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lysyi3m/currents-mcp/app/cache"
	"github.com/lysyi3m/currents-mcp/app/currents"
)

func newTestService(serverURL, apiKey string) *Service {
	client := currents.NewClient(serverURL, 5*time.Second, "CurrentsMCP/1.0",
		func() string { return apiKey })
	return NewService(client, cache.New(cache.DefaultTTL),
		func() string { return apiKey }, "en", 20)
}

func newsPayload(count int) string {
	articles := make([]map[string]any, count)
	for i := range articles {
		articles[i] = map[string]any{
			"id":        fmt.Sprintf("id-%d", i),
			"title":     fmt.Sprintf("Article %d", i),
			"url":       "https://example.com",
			"language":  "en",
			"category":  []string{"general"},
			"published": "2025-06-01 10:00:00 +0000",
		}
	}
	payload, _ := json.Marshal(map[string]any{"status": "ok", "news": articles})
	return string(payload)
}

func TestSearchNews_InvalidStartDate(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	svc := newTestService(server.URL, "key")
	result := svc.SearchNews(context.Background(), SearchRequest{StartDate: "not-a-date"})

	errResult, ok := result.(ErrorResult)
	if !ok {
		t.Fatalf("Expected ErrorResult, got %T", result)
	}
	if !strings.Contains(errResult.Message, "Invalid start_date format") {
		t.Errorf("Expected format hint in message, got '%s'", errResult.Message)
	}
	if !strings.Contains(errResult.Message, "ISO 8601") {
		t.Errorf("Expected ISO 8601 hint in message, got '%s'", errResult.Message)
	}
	if requests != 0 {
		t.Errorf("Expected no outbound call for invalid date, got %d", requests)
	}
}

func TestSearchNews_InvalidEndDate(t *testing.T) {
	svc := newTestService("http://unused.invalid", "key")
	result := svc.SearchNews(context.Background(), SearchRequest{EndDate: "garbage"})

	errResult, ok := result.(ErrorResult)
	if !ok {
		t.Fatalf("Expected ErrorResult, got %T", result)
	}
	if !strings.Contains(errResult.Message, "Invalid end_date format") {
		t.Errorf("Expected end_date format hint, got '%s'", errResult.Message)
	}
}

func TestSearchNews_CapsResultsAndEchoesParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(newsPayload(25)))
	}))
	defer server.Close()

	svc := newTestService(server.URL, "key")
	req := SearchRequest{
		Keywords:  "climate change",
		Language:  "en",
		StartDate: "2025-06-01T00:00:00+00:00",
	}
	result := svc.SearchNews(context.Background(), req)

	search, ok := result.(SearchResult)
	if !ok {
		t.Fatalf("Expected SearchResult, got %T", result)
	}
	if search.Status != "success" {
		t.Errorf("Expected success status, got '%s'", search.Status)
	}
	if search.TotalResults != 20 {
		t.Errorf("Expected 20 results after capping, got %d", search.TotalResults)
	}
	if len(search.Articles) != 20 {
		t.Errorf("Expected 20 articles, got %d", len(search.Articles))
	}
	if search.SearchParams.Keywords != "climate change" {
		t.Errorf("Expected keywords echoed verbatim, got '%s'", search.SearchParams.Keywords)
	}
	if search.SearchParams.Language != "en" {
		t.Errorf("Expected language echoed verbatim, got '%s'", search.SearchParams.Language)
	}
	if search.SearchParams.StartDate != "2025-06-01T00:00:00+00:00" {
		t.Errorf("Expected start_date echoed verbatim, got '%s'", search.SearchParams.StartDate)
	}
}

func TestSearchNews_ForwardsOnlyNonEmptyFilters(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(newsPayload(1)))
	}))
	defer server.Close()

	svc := newTestService(server.URL, "key")
	svc.SearchNews(context.Background(), SearchRequest{Keywords: "economy"})

	if len(gotQuery["keywords"]) == 0 || gotQuery["keywords"][0] != "economy" {
		t.Errorf("Expected keywords forwarded, got %v", gotQuery)
	}
	for _, absent := range []string{"language", "country", "category", "start_date", "end_date"} {
		if _, ok := gotQuery[absent]; ok {
			t.Errorf("Expected empty filter '%s' to be omitted", absent)
		}
	}
}

func TestSearchNews_RateLimitAndAuthErrors(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		wantMessage string
	}{
		{"rate limited", http.StatusTooManyRequests, "Rate limit exceeded. Free tier allows 600 requests per hour."},
		{"unauthorized", http.StatusUnauthorized, "Invalid API key. Please check your CURRENTS_API_KEY."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			svc := newTestService(server.URL, "key")
			result := svc.SearchNews(context.Background(), SearchRequest{})

			errResult, ok := result.(ErrorResult)
			if !ok {
				t.Fatalf("Expected ErrorResult, got %T", result)
			}
			if errResult.Message != tt.wantMessage {
				t.Errorf("Expected message '%s', got '%s'", tt.wantMessage, errResult.Message)
			}
		})
	}
}

func TestSearchNews_TimeoutNamesConfiguredDuration(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := currents.NewClient(server.URL, 50*time.Millisecond, "CurrentsMCP/1.0",
		func() string { return "key" })
	svc := NewService(client, cache.New(cache.DefaultTTL),
		func() string { return "key" }, "en", 20)

	result := svc.SearchNews(context.Background(), SearchRequest{})

	errResult, ok := result.(ErrorResult)
	if !ok {
		t.Fatalf("Expected ErrorResult, got %T", result)
	}
	if !strings.Contains(errResult.Message, "Request timeout after 50ms") {
		t.Errorf("Expected timeout message naming configured duration, got '%s'", errResult.Message)
	}
}

func TestGetLatestNews_DefaultsLanguage(t *testing.T) {
	var gotLanguage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLanguage = r.URL.Query().Get("language")
		w.Write([]byte(newsPayload(3)))
	}))
	defer server.Close()

	svc := newTestService(server.URL, "key")
	result := svc.GetLatestNews(context.Background(), "")

	latest, ok := result.(LatestNewsResult)
	if !ok {
		t.Fatalf("Expected LatestNewsResult, got %T", result)
	}
	if gotLanguage != "en" {
		t.Errorf("Expected default language 'en' forwarded, got '%s'", gotLanguage)
	}
	if latest.Language != "en" {
		t.Errorf("Expected language 'en' in result, got '%s'", latest.Language)
	}
	if latest.TotalResults != 3 {
		t.Errorf("Expected 3 results, got %d", latest.TotalResults)
	}
	if latest.RetrievedAt == "" {
		t.Error("Expected retrieval timestamp to be stamped")
	}
	if _, err := time.Parse(time.RFC3339, latest.RetrievedAt); err != nil {
		t.Errorf("Expected RFC3339 retrieval timestamp, got '%s'", latest.RetrievedAt)
	}
}

func TestGetLatestNews_ExplicitLanguage(t *testing.T) {
	var gotLanguage string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLanguage = r.URL.Query().Get("language")
		w.Write([]byte(newsPayload(1)))
	}))
	defer server.Close()

	svc := newTestService(server.URL, "key")
	result := svc.GetLatestNews(context.Background(), "fr")

	latest := result.(LatestNewsResult)
	if gotLanguage != "fr" {
		t.Errorf("Expected explicit language forwarded, got '%s'", gotLanguage)
	}
	if latest.Language != "fr" {
		t.Errorf("Expected language 'fr' in result, got '%s'", latest.Language)
	}
}

func TestGetAvailableLanguages_CacheFirst(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"status":"ok","languages":{"English":"en","French":"fr"}}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL, "key")

	first := svc.GetAvailableLanguages(context.Background()).(LanguagesResult)
	if first.Source != "api" {
		t.Errorf("Expected first call tagged 'api', got '%s'", first.Source)
	}
	if first.TotalLanguages != 2 {
		t.Errorf("Expected 2 languages, got %d", first.TotalLanguages)
	}

	second := svc.GetAvailableLanguages(context.Background()).(LanguagesResult)
	if second.Source != "cache" {
		t.Errorf("Expected second call tagged 'cache', got '%s'", second.Source)
	}
	if second.TotalLanguages != first.TotalLanguages {
		t.Errorf("Expected identical counts, got %d and %d", first.TotalLanguages, second.TotalLanguages)
	}
	if second.Languages["French"] != "fr" {
		t.Errorf("Expected identical payloads, got %v", second.Languages)
	}

	if requests != 1 {
		t.Errorf("Expected a single upstream call inside the TTL window, got %d", requests)
	}
}

func TestGetAvailableRegions_CacheFirst(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"status":"ok","regions":{"United States":"US"}}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL, "key")

	first := svc.GetAvailableRegions(context.Background()).(RegionsResult)
	second := svc.GetAvailableRegions(context.Background()).(RegionsResult)

	if first.Source != "api" || second.Source != "cache" {
		t.Errorf("Expected api then cache, got '%s' and '%s'", first.Source, second.Source)
	}
	if second.Regions["United States"] != "US" {
		t.Errorf("Expected cached regions payload, got %v", second.Regions)
	}
	if requests != 1 {
		t.Errorf("Expected a single upstream call, got %d", requests)
	}
}

func TestGetAvailableCategories_CacheFirst(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`{"status":"ok","categories":["general","technology","sports"]}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL, "key")

	first := svc.GetAvailableCategories(context.Background()).(CategoriesResult)
	second := svc.GetAvailableCategories(context.Background()).(CategoriesResult)

	if first.Source != "api" || second.Source != "cache" {
		t.Errorf("Expected api then cache, got '%s' and '%s'", first.Source, second.Source)
	}
	if first.TotalCategories != 3 || second.TotalCategories != 3 {
		t.Errorf("Expected 3 categories on both calls, got %d and %d",
			first.TotalCategories, second.TotalCategories)
	}
	if requests != 1 {
		t.Errorf("Expected a single upstream call, got %d", requests)
	}
}

func TestCheckAPIStatus_NoCredential(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	svc := newTestService(server.URL, "")
	result := svc.CheckAPIStatus(context.Background())

	errResult, ok := result.(ErrorResult)
	if !ok {
		t.Fatalf("Expected ErrorResult, got %T", result)
	}
	if errResult.Configuration == nil {
		t.Fatal("Expected configuration block in error result")
	}
	if errResult.Configuration.APIKeySet {
		t.Error("Expected api_key_set to be false")
	}
	if len(errResult.Troubleshooting) == 0 {
		t.Error("Expected troubleshooting hints")
	}
	if requests != 0 {
		t.Errorf("Expected no network call without a credential, got %d", requests)
	}
}

func TestCheckAPIStatus_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(newsPayload(5)))
	}))
	defer server.Close()

	svc := newTestService(server.URL, "supersecretkey")

	// Warm one reference key so cache status reflects per-key validity
	svc.cache.Set("languages", map[string]string{"English": "en"})

	result := svc.CheckAPIStatus(context.Background())

	status, ok := result.(StatusResult)
	if !ok {
		t.Fatalf("Expected StatusResult, got %T", result)
	}
	if status.Status != "success" {
		t.Errorf("Expected success status, got '%s'", status.Status)
	}
	if !status.Configuration.APIKeySet {
		t.Error("Expected api_key_set to be true")
	}
	if status.Configuration.APIKeyMasked != "supersec..." {
		t.Errorf("Expected masked key 'supersec...', got '%s'", status.Configuration.APIKeyMasked)
	}
	if status.Configuration.DefaultLanguage != "en" {
		t.Errorf("Expected default language 'en', got '%s'", status.Configuration.DefaultLanguage)
	}
	if status.Configuration.MaxResults != 20 {
		t.Errorf("Expected max results 20, got %d", status.Configuration.MaxResults)
	}
	if status.TestResult.EndpointTested != "latest-news" {
		t.Errorf("Expected latest-news probe, got '%s'", status.TestResult.EndpointTested)
	}
	if status.TestResult.ArticlesCount != 5 {
		t.Errorf("Expected 5 probe articles, got %d", status.TestResult.ArticlesCount)
	}
	if !status.CacheStatus.LanguagesCached {
		t.Error("Expected languages key to be reported as cached")
	}
	if status.CacheStatus.RegionsCached || status.CacheStatus.CategoriesCached {
		t.Error("Expected regions and categories keys to be reported as not cached")
	}
}

func TestCheckAPIStatus_ShortKeyMasking(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(newsPayload(0)))
	}))
	defer server.Close()

	svc := newTestService(server.URL, "short")
	result := svc.CheckAPIStatus(context.Background())

	status := result.(StatusResult)
	if status.Configuration.APIKeyMasked != "***" {
		t.Errorf("Expected short key masked as '***', got '%s'", status.Configuration.APIKeyMasked)
	}
}

func TestCheckAPIStatus_ProbeFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	svc := newTestService(server.URL, "key")
	result := svc.CheckAPIStatus(context.Background())

	errResult, ok := result.(ErrorResult)
	if !ok {
		t.Fatalf("Expected ErrorResult, got %T", result)
	}
	if !strings.Contains(errResult.Message, "API status check failed") {
		t.Errorf("Expected wrapped failure message, got '%s'", errResult.Message)
	}
	if len(errResult.Troubleshooting) != 4 {
		t.Errorf("Expected 4 troubleshooting hints, got %d", len(errResult.Troubleshooting))
	}
}

func TestOperations_ProviderErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error"}`))
	}))
	defer server.Close()

	svc := newTestService(server.URL, "key")

	if _, ok := svc.SearchNews(context.Background(), SearchRequest{}).(ErrorResult); !ok {
		t.Error("Expected error result when search payload status is not ok")
	}
	if _, ok := svc.GetLatestNews(context.Background(), "").(ErrorResult); !ok {
		t.Error("Expected error result when latest-news payload status is not ok")
	}
	if _, ok := svc.GetAvailableLanguages(context.Background()).(ErrorResult); !ok {
		t.Error("Expected error result when languages payload status is not ok")
	}
}
