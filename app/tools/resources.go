package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lysyi3m/currents-mcp/app/cache"
	"github.com/lysyi3m/currents-mcp/app/currents"
)

func (h *Handler) registerResources(s *server.MCPServer) {
	s.AddResource(mcp.NewResource("config://news-api", "API Configuration",
		mcp.WithResourceDescription("Currents API configuration and setup information"),
		mcp.WithMIMEType("application/json"),
	), h.resourceHandler("config://news-api", h.apiConfigPayload))

	s.AddResource(mcp.NewResource("data://supported-languages", "Supported Languages",
		mcp.WithResourceDescription("Complete list of supported languages with ISO codes"),
		mcp.WithMIMEType("application/json"),
	), h.resourceHandler("data://supported-languages", supportedLanguagesPayload))

	s.AddResource(mcp.NewResource("data://news-categories", "News Categories",
		mcp.WithResourceDescription("Available news categories with descriptions and usage examples"),
		mcp.WithMIMEType("application/json"),
	), h.resourceHandler("data://news-categories", newsCategoriesPayload))
}

func (h *Handler) resourceHandler(uri string, payload func() any) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.MarshalIndent(payload(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize resource %s: %w", uri, err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func (h *Handler) apiConfigPayload() any {
	return map[string]any{
		"api_info": map[string]any{
			"name":          "Currents API",
			"version":       "v1",
			"provider":      "https://currentsapi.services",
			"documentation": "https://currentsapi.services/docs",
		},
		"endpoints": map[string]any{
			"search":      currents.BaseURL + "/search",
			"latest_news": currents.BaseURL + "/latest-news",
			"languages":   currents.BaseURL + "/available/languages",
			"regions":     currents.BaseURL + "/available/regions",
			"categories":  currents.BaseURL + "/available/category",
		},
		"authentication": map[string]any{
			"type":                 "Bearer Token",
			"header":               "Authorization: Bearer {API_KEY}",
			"environment_variable": "CURRENTS_API_KEY",
		},
		"rate_limits": map[string]any{
			"free_tier":  "600 requests per hour",
			"paid_tiers": "Higher limits available",
		},
		"setup_instructions": []string{
			"1. Sign up at https://currentsapi.services",
			"2. Get your API key from the dashboard",
			"3. Set CURRENTS_API_KEY environment variable",
			"4. Test connection with check_api_status tool",
		},
		"configuration": map[string]any{
			"timeout":          h.cfg.Timeout,
			"default_language": h.cfg.DefaultLanguage,
			"max_results":      h.cfg.MaxResults,
			"cache_ttl":        int(cache.DefaultTTL.Seconds()),
		},
	}
}

func supportedLanguagesPayload() any {
	return map[string]any{
		"languages": map[string]string{
			"Arabic":     "ar",
			"Chinese":    "zh",
			"Dutch":      "nl",
			"English":    "en",
			"Finnish":    "fi",
			"French":     "fr",
			"German":     "de",
			"Hindi":      "hi",
			"Italian":    "it",
			"Japanese":   "ja",
			"Korean":     "ko",
			"Malay":      "msa",
			"Portuguese": "pt",
			"Russian":    "ru",
			"Spanish":    "es",
		},
		"usage_examples": []string{
			"language=en for English news",
			"language=fr for French news",
			"language=zh for Chinese news",
		},
		"notes": []string{
			"Language codes are ISO 639-1 standard",
			"Some languages may have limited news sources",
			"Use get_available_languages() tool for real-time data",
		},
	}
}

func newsCategoriesPayload() any {
	return map[string]any{
		"categories": []map[string]string{
			{"name": "general", "description": "General news and current events"},
			{"name": "technology", "description": "Technology, innovation, and digital trends"},
			{"name": "business", "description": "Business news, markets, and economy"},
			{"name": "sports", "description": "Sports news and events"},
			{"name": "entertainment", "description": "Entertainment, celebrity news, and pop culture"},
			{"name": "health", "description": "Health, medical news, and wellness"},
			{"name": "science", "description": "Scientific discoveries and research"},
			{"name": "politics", "description": "Political news and government"},
			{"name": "world", "description": "International news and global events"},
			{"name": "regional", "description": "Regional and local news"},
			{"name": "lifestyle", "description": "Lifestyle, culture, and society"},
			{"name": "programming", "description": "Programming, software development"},
			{"name": "academia", "description": "Academic and educational news"},
			{"name": "opinion", "description": "Opinion pieces and editorials"},
			{"name": "food", "description": "Food, cooking, and culinary news"},
			{"name": "finance", "description": "Financial markets and investment news"},
			{"name": "game", "description": "Gaming news and industry updates"},
		},
		"usage_examples": []string{
			"category=technology for tech news",
			"category=sports for sports updates",
			"category=business for market news",
		},
		"filtering_tips": []string{
			"Combine with keywords for specific results",
			"Use with language parameter for localized content",
			"Categories are ordered by source count",
		},
	}
}
