package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/lysyi3m/currents-mcp/app/cfg"
	"github.com/lysyi3m/currents-mcp/app/news"
)

// Handler registers the news operations as MCP tools and the
// descriptive reference payloads as MCP resources.
type Handler struct {
	service *news.Service
	cfg     *cfg.Cfg
}

func NewHandler(service *news.Service, appCfg *cfg.Cfg) *Handler {
	return &Handler{
		service: service,
		cfg:     appCfg,
	}
}

// Register wires all tools and resources into the MCP server.
func (h *Handler) Register(s *server.MCPServer) {
	s.AddTool(mcp.NewTool("search_news",
		mcp.WithDescription("Search for news articles with various filters"),
		mcp.WithString("keywords", mcp.Description("Search keywords to filter articles")),
		mcp.WithString("language", mcp.Description("Language code (e.g., 'en', 'fr', 'de')")),
		mcp.WithString("country", mcp.Description("Country code (e.g., 'US', 'GB', 'FR')")),
		mcp.WithString("category", mcp.Description("News category (e.g., 'technology', 'business', 'sports')")),
		mcp.WithString("start_date", mcp.Description("Start date in ISO 8601 format (YYYY-MM-DDTHH:MM:SS+00:00)")),
		mcp.WithString("end_date", mcp.Description("End date in ISO 8601 format (YYYY-MM-DDTHH:MM:SS+00:00)")),
	), h.logged("search_news", h.searchNews))

	s.AddTool(mcp.NewTool("get_latest_news",
		mcp.WithDescription("Get the latest news articles in a specific language"),
		mcp.WithString("language", mcp.Description("Language code (default: 'en')")),
	), h.logged("get_latest_news", h.getLatestNews))

	s.AddTool(mcp.NewTool("get_available_languages",
		mcp.WithDescription("Get list of supported language codes and names"),
	), h.logged("get_available_languages", h.getAvailableLanguages))

	s.AddTool(mcp.NewTool("get_available_regions",
		mcp.WithDescription("Get list of supported country/region codes and names"),
	), h.logged("get_available_regions", h.getAvailableRegions))

	s.AddTool(mcp.NewTool("get_available_categories",
		mcp.WithDescription("Get list of supported news categories"),
	), h.logged("get_available_categories", h.getAvailableCategories))

	s.AddTool(mcp.NewTool("check_api_status",
		mcp.WithDescription("Check Currents API connectivity and configuration status"),
	), h.logged("check_api_status", h.checkAPIStatus))

	h.registerResources(s)
}

// logged wraps a tool handler with a per-invocation request ID and
// duration logging.
func (h *Handler) logged(name string, fn server.ToolHandlerFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		requestID := uuid.NewString()
		start := time.Now()

		slog.Debug("Tool invoked", "tool", name, "request_id", requestID)

		result, err := fn(ctx, req)

		slog.Info("Tool completed",
			"tool", name,
			"request_id", requestID,
			"duration", time.Since(start))

		return result, err
	}
}

func (h *Handler) searchNews(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := h.service.SearchNews(ctx, news.SearchRequest{
		Keywords:  req.GetString("keywords", ""),
		Language:  req.GetString("language", ""),
		Country:   req.GetString("country", ""),
		Category:  req.GetString("category", ""),
		StartDate: req.GetString("start_date", ""),
		EndDate:   req.GetString("end_date", ""),
	})
	return textResult(result)
}

func (h *Handler) getLatestNews(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result := h.service.GetLatestNews(ctx, req.GetString("language", ""))
	return textResult(result)
}

func (h *Handler) getAvailableLanguages(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(h.service.GetAvailableLanguages(ctx))
}

func (h *Handler) getAvailableRegions(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(h.service.GetAvailableRegions(ctx))
}

func (h *Handler) getAvailableCategories(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(h.service.GetAvailableCategories(ctx))
}

func (h *Handler) checkAPIStatus(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return textResult(h.service.CheckAPIStatus(ctx))
}

func textResult(v any) (*mcp.CallToolResult, error) {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize result: %w", err)
	}
	return mcp.NewToolResultText(string(payload)), nil
}
