package config

import (
	"time"

	"golang-stock-scanner/pkg/common"
	"golang-stock-scanner/pkg/config"
)

// Scanner holds screening and orchestration settings.
type Scanner struct {
	Profile       string                            `mapstructure:"profile"`
	Workers       int                               `mapstructure:"workers"`
	DisplaySuffix string                            `mapstructure:"display_suffix"`
	Profiles      map[string]map[string]interface{} `mapstructure:"profiles"`
}

// Universe selects where the ticker list comes from.
type Universe struct {
	Source  string   `mapstructure:"source"`
	File    string   `mapstructure:"file"`
	Tickers []string `mapstructure:"tickers"`
}

// DataSource selects the bar provider.
type DataSource struct {
	Provider string `mapstructure:"provider"`
}

// YahooFinance holds the configuration for the Yahoo Finance chart API.
type YahooFinance struct {
	BaseURL   string        `mapstructure:"base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// Alpaca holds the configuration for the Alpaca market data API.
type Alpaca struct {
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	BaseURL   string `mapstructure:"base_url"`
	Feed      string `mapstructure:"feed"`
}

// Cache holds bar series cache settings.
type Cache struct {
	Enabled         bool          `mapstructure:"enabled"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

const defaultTopN = 10

// Schedule holds the nightly scan settings.
type Schedule struct {
	Enabled bool   `mapstructure:"enabled"`
	Cron    string `mapstructure:"cron"`
	Profile string `mapstructure:"profile"`
	Notify  bool   `mapstructure:"notify"`
	// TopN caps the candidates listed in a notification. Zero lists all of them.
	TopN *int `mapstructure:"top_n"`
}

// Limit returns the notification cap, treating an unset top_n as 10.
func (s Schedule) Limit() int {
	if s.TopN == nil {
		return defaultTopN
	}
	return *s.TopN
}

// Telegram holds configuration for the Telegram notifier.
type Telegram struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   int64  `mapstructure:"chat_id"`
}

// Config holds the full configuration for the scanner service.
type Config struct {
	App          config.App      `mapstructure:"app"`
	Logger       config.Logger   `mapstructure:"logger"`
	Database     config.Database `mapstructure:"database"`
	Redis        config.Redis    `mapstructure:"redis"`
	API          config.API      `mapstructure:"api"`
	Scanner      Scanner         `mapstructure:"scanner"`
	Universe     Universe        `mapstructure:"universe"`
	DataSource   DataSource      `mapstructure:"data_source"`
	YahooFinance YahooFinance    `mapstructure:"yahoo_finance"`
	Alpaca       Alpaca          `mapstructure:"alpaca"`
	Cache        Cache           `mapstructure:"cache"`
	Schedule     Schedule        `mapstructure:"schedule"`
	Telegram     Telegram        `mapstructure:"telegram"`
}

// Load loads the scanner configuration from the given path.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := config.Load(path, &cfg); err != nil {
		return nil, err
	}
	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills unset values.
func (c *Config) ApplyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "breakout-scanner"
	}
	if c.App.TimeZone == "" {
		c.App.TimeZone = "America/Sao_Paulo"
	}
	if c.Logger.Level == "" {
		c.Logger.Level = "info"
	}
	if c.API.Port == 0 {
		c.API.Port = 8080
	}
	if c.Scanner.Profile == "" {
		c.Scanner.Profile = common.DefaultProfile
	}
	if c.Scanner.Workers < 1 {
		c.Scanner.Workers = 1
	}
	if c.Universe.Source == "" {
		c.Universe.Source = common.UniverseSourceFile
	}
	if c.Universe.File == "" {
		c.Universe.File = "configs/universe.yaml"
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = common.ProviderYahoo
	}
	if c.YahooFinance.BaseURL == "" {
		c.YahooFinance.BaseURL = "https://query1.finance.yahoo.com"
	}
	if c.YahooFinance.Timeout == 0 {
		c.YahooFinance.Timeout = 15 * time.Second
	}
	if c.Alpaca.Feed == "" {
		c.Alpaca.Feed = "iex"
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 6 * time.Hour
	}
	if c.Cache.CleanupInterval == 0 {
		c.Cache.CleanupInterval = 30 * time.Minute
	}
	if c.Schedule.Cron == "" {
		c.Schedule.Cron = "30 18 * * 1-5"
	}
	if c.Schedule.TopN == nil {
		topN := defaultTopN
		c.Schedule.TopN = &topN
	}
}
