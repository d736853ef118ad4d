package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"StockWatcher/internal/model"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Symbol  string `yaml:"symbol"`
		Mock    bool   `yaml:"mock"`
	} `yaml:"data_source"`
	Analysis struct {
		SMAFast      int    `yaml:"sma_fast"`
		SMASlow      int    `yaml:"sma_slow"`
		RSIPeriod    int    `yaml:"rsi_period"`
		StatsWindow  int    `yaml:"stats_window"`
		ChartWindow  int    `yaml:"chart_window"`
		PreviewRows  int    `yaml:"preview_rows"`
		DefaultStart string `yaml:"default_start"`
	} `yaml:"analysis"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Digest struct {
		Cron         string   `yaml:"cron"`
		Symbols      []string `yaml:"symbols"`
		LookbackDays int      `yaml:"lookback_days"`
	} `yaml:"digest"`
	Log struct {
		Level  string `yaml:"level"`
		Pretty bool   `yaml:"pretty"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads an optional .env file and the YAML config, then applies
// environment variable overrides and defaults. Missing files are not errors.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("DATA_BASE_URL"); v != "" {
		c.DataSource.BaseURL = v
	}
	if v := os.Getenv("DATA_API_KEY"); v != "" {
		c.DataSource.APIKey = v
	}
	if v := os.Getenv("DEFAULT_SYMBOL"); v != "" {
		c.DataSource.Symbol = v
	}
	if v := os.Getenv("MOCK_DATA"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DataSource.Mock = b
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		c.Telegram.ChatID = v
	}
	if v := os.Getenv("DIGEST_CRON"); v != "" {
		c.Digest.Cron = v
	}
	if v := os.Getenv("DIGEST_SYMBOLS"); v != "" {
		c.Digest.Symbols = strings.Split(v, ",")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
}

func (c *Config) applyDefaults() {
	def := model.DefaultParams()
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.DataSource.Symbol == "" {
		c.DataSource.Symbol = "AAPL"
	}
	if c.Analysis.SMAFast == 0 {
		c.Analysis.SMAFast = def.SMAFast
	}
	if c.Analysis.SMASlow == 0 {
		c.Analysis.SMASlow = def.SMASlow
	}
	if c.Analysis.RSIPeriod == 0 {
		c.Analysis.RSIPeriod = def.RSIPeriod
	}
	if c.Analysis.StatsWindow == 0 {
		c.Analysis.StatsWindow = def.StatsWindow
	}
	if c.Analysis.ChartWindow == 0 {
		c.Analysis.ChartWindow = def.ChartWindow
	}
	if c.Analysis.PreviewRows == 0 {
		c.Analysis.PreviewRows = def.PreviewRows
	}
	if c.Analysis.DefaultStart == "" {
		c.Analysis.DefaultStart = "2022-01-01"
	}
	if c.Digest.LookbackDays == 0 {
		c.Digest.LookbackDays = 365
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks that all fields hold usable values.
func (c *Config) Validate() error {
	var errs error

	a := c.Analysis
	for name, v := range map[string]int{
		"analysis.sma_fast":     a.SMAFast,
		"analysis.sma_slow":     a.SMASlow,
		"analysis.rsi_period":   a.RSIPeriod,
		"analysis.stats_window": a.StatsWindow,
		"analysis.chart_window": a.ChartWindow,
		"analysis.preview_rows": a.PreviewRows,
	} {
		if v <= 0 {
			errs = errors.Join(errs, fmt.Errorf("%s must be positive", name))
		}
	}
	if _, err := time.Parse(model.DateLayout, a.DefaultStart); err != nil {
		errs = errors.Join(errs, fmt.Errorf("analysis.default_start must be YYYY-MM-DD"))
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		errs = errors.Join(errs, fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together"))
	}
	if c.Digest.Cron != "" {
		if !c.TelegramEnabled() {
			errs = errors.Join(errs, fmt.Errorf("digest.cron requires telegram"))
		}
		if len(c.Digest.Symbols) == 0 {
			errs = errors.Join(errs, fmt.Errorf("digest.symbols is required with digest.cron"))
		}
		if _, err := cron.NewParser(cronSpec).Parse(c.Digest.Cron); err != nil {
			errs = errors.Join(errs, fmt.Errorf("digest.cron: %w", err))
		}
	}
	return errs
}

// cronSpec matches the scheduler's cron.WithSeconds parser.
const cronSpec = cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor

// TelegramEnabled reports whether the Telegram bot is configured.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Params returns the indicator windows.
func (c *Config) Params() model.Params {
	return model.Params{
		SMAFast:     c.Analysis.SMAFast,
		SMASlow:     c.Analysis.SMASlow,
		RSIPeriod:   c.Analysis.RSIPeriod,
		StatsWindow: c.Analysis.StatsWindow,
		ChartWindow: c.Analysis.ChartWindow,
		PreviewRows: c.Analysis.PreviewRows,
	}
}

// DefaultStart returns the start date used when a request omits one.
func (c *Config) DefaultStart() time.Time {
	t, err := time.Parse(model.DateLayout, c.Analysis.DefaultStart)
	if err != nil {
		return time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return t
}
