package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/lysyi3m/currents-mcp/app/api"
	"github.com/lysyi3m/currents-mcp/app/cache"
	"github.com/lysyi3m/currents-mcp/app/cfg"
	"github.com/lysyi3m/currents-mcp/app/currents"
	"github.com/lysyi3m/currents-mcp/app/news"
	"github.com/lysyi3m/currents-mcp/app/tools"
)

func main() {
	godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogging(appCfg.Debug)

	slog.Info("Starting Currents MCP server...", "version", appCfg.Version)

	// The credential is re-read on every request so a key supplied
	// after startup takes effect without a restart.
	key := func() string {
		if v := os.Getenv("CURRENTS_API_KEY"); v != "" {
			return v
		}
		return appCfg.APIKey
	}

	if key() == "" {
		slog.Warn("CURRENTS_API_KEY environment variable not set")
		slog.Warn("Get your free API key from https://currentsapi.services")
	}

	client := currents.NewClient(currents.BaseURL,
		time.Duration(appCfg.Timeout)*time.Second, appCfg.UserAgent, key)
	defer client.Close()

	referenceCache := cache.New(cache.DefaultTTL)
	service := news.NewService(client, referenceCache, key,
		appCfg.DefaultLanguage, appCfg.MaxResults)

	handler := tools.NewHandler(service, appCfg)
	mcpServer := tools.NewServer(handler, appCfg.Version)

	if appCfg.Port != "" {
		runHTTP(mcpServer, appCfg)
	} else {
		runStdio(mcpServer)
	}

	slog.Info("Currents MCP server shutdown complete")
}

func runStdio(mcpServer *mcpserver.MCPServer) {
	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- mcpserver.ServeStdio(mcpServer)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("Serving MCP over stdio")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		if err != nil {
			slog.Error("Stdio server error", "error", err)
		}
	}
}

func runHTTP(mcpServer *mcpserver.MCPServer, appCfg *cfg.Cfg) {
	streamable := mcpserver.NewStreamableHTTPServer(mcpServer)
	engine := api.NewServer(streamable, appCfg.Version)

	httpServer := &http.Server{
		Addr:        ":" + appCfg.Port,
		Handler:     engine,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Serving MCP over HTTP", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}

func setupLogging(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	// stdout belongs to the stdio transport, logs go to stderr
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
