package cfg

import (
	"cmp"
	"fmt"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Currents API configuration
	APIKey  string `long:"api-key" env:"CURRENTS_API_KEY" description:"Currents API key (required for live calls)"`
	Timeout int    `long:"timeout" env:"API_TIMEOUT" default:"15" description:"Request timeout in seconds"`

	// Result shaping
	DefaultLanguage string `long:"default-language" env:"DEFAULT_LANGUAGE" default:"en" description:"Default language code for news requests"`
	MaxResults      int    `long:"max-results" env:"MAX_RESULTS" default:"20" description:"Maximum number of articles returned per call"`

	// Transport configuration
	Port      string `long:"port" env:"PORT" description:"Serve MCP over HTTP on this port (default: stdio)"`
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"CurrentsMCP/1.0" description:"User agent string for outbound requests"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		APIKey:          raw.APIKey,
		Timeout:         raw.Timeout,
		DefaultLanguage: raw.DefaultLanguage,
		MaxResults:      raw.MaxResults,
		Port:            raw.Port,
		UserAgent:       raw.UserAgent,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}
