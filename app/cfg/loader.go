package cfg

import (
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Document store configuration
	RedisAddr     string `long:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379" description:"Document store (Redis) address"`
	RedisPassword string `long:"redis-password" env:"REDIS_PASSWORD" description:"Document store password (optional)"`
	RedisDB       int    `long:"redis-db" env:"REDIS_DB" default:"0" description:"Document store database number"`

	// News search configuration
	GNewsAPIKey  string `long:"gnews-api-key" env:"GNEWS_API_KEY" description:"GNews API key (search degrades to placeholders when absent)"`
	GNewsBaseURL string `long:"gnews-base-url" env:"GNEWS_BASE_URL" description:"GNews search endpoint override"`

	// Identity provider configuration
	GoogleClientID string `long:"google-client-id" env:"GOOGLE_CLIENT_ID" description:"Google OAuth client ID (sign-in unavailable when absent)"`

	// Application configuration
	TopicsDir string `long:"topics-dir" env:"TOPICS_DIR" default:"./topics" description:"Directory containing topic configuration files"`
	Port      string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Profeta Diario/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/Sao_Paulo)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	// Client identifiers and API keys live in a .env file in development;
	// a missing file is fine.
	_ = godotenv.Load()

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
		RedisAddr:      raw.RedisAddr,
		RedisPassword:  raw.RedisPassword,
		RedisDB:        raw.RedisDB,
		GNewsAPIKey:    raw.GNewsAPIKey,
		GNewsBaseURL:   raw.GNewsBaseURL,
		GoogleClientID: raw.GoogleClientID,
		TopicsDir:      raw.TopicsDir,
		Port:           raw.Port,
		UserAgent:      raw.UserAgent,
		Timezone:       raw.Timezone,
		Debug:          raw.Debug,
		Version:        GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
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

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
