package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// HTTP server configuration
	Port    string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://feeds.example.com)"`

	// Redis cache configuration
	RedisAddr string `long:"redis-addr" env:"REDIS_ADDR" default:"localhost:6379" description:"Redis address for the translation cache"`
	CacheTTL  int    `long:"cache-ttl" env:"CACHE_TTL" default:"604800" description:"Translation cache TTL in seconds"`

	// Translation service configuration
	OpenAIAPIKey     string `long:"openai-api-key" env:"OPENAI_API_KEY" description:"API key for the OpenAI-compatible translation service"`
	OpenAIBaseURL    string `long:"openai-base-url" env:"OPENAI_BASE_URL" description:"Base URL for the OpenAI-compatible translation service"`
	Model            string `long:"model" env:"MODEL_NAME" default:"gpt-4o-mini" description:"Model used for translation"`
	TargetLanguage   string `long:"target-language" env:"TARGET_LANGUAGE" default:"Chinese" description:"Language articles are translated into"`
	TranslateTimeout int    `long:"translate-timeout" env:"TRANSLATE_TIMEOUT" default:"120" description:"Per-entry translation timeout in seconds"`

	// Pipeline configuration
	WorkerCount int `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of concurrent entry translation workers"`

	// Application metadata
	FeedsDir    string `long:"feeds-dir" env:"FEEDS_DIR" default:"./feeds" description:"Directory containing feed preset files"`
	TitlePrefix string `long:"title-prefix" env:"TITLE_PREFIX" default:"AI" description:"Prefix added to translated feed titles"`
	UserAgent   string `long:"user-agent" env:"USER_AGENT" default:"RSS Babel/1.0" description:"User agent string for HTTP requests"`
	Timezone    string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug       bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
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
		Port:             raw.Port,
		BaseUrl:          raw.BaseUrl,
		RedisAddr:        raw.RedisAddr,
		CacheTTL:         raw.CacheTTL,
		OpenAIAPIKey:     raw.OpenAIAPIKey,
		OpenAIBaseURL:    raw.OpenAIBaseURL,
		Model:            raw.Model,
		TargetLanguage:   raw.TargetLanguage,
		TranslateTimeout: raw.TranslateTimeout,
		WorkerCount:      raw.WorkerCount,
		FeedsDir:         raw.FeedsDir,
		TitlePrefix:      raw.TitlePrefix,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
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
		}
	}
	return nil
}
