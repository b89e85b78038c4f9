package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

const (
	DefaultLibraryURL = "http://127.0.0.1:18791"
	DefaultGeocodeURL = "http://127.0.0.1:18792"
	DefaultPageSize   = 1000
	DefaultBatchSize  = 10
	// DefaultScheduleExpr runs a recap at 06:00 on the first of each month.
	DefaultScheduleExpr  = "0 6 1 * *"
	DefaultScheduleRange = "last-30-days"
)

type Config struct {
	Library  LibraryConfig  `json:"library"`
	Geocode  GeocodeConfig  `json:"geocode"`
	Store    StoreConfig    `json:"store"`
	Pipeline PipelineConfig `json:"pipeline"`
	Schedule ScheduleConfig `json:"schedule"`
	Telegram TelegramConfig `json:"telegram"`
}

type LibraryConfig struct {
	BaseURL string `json:"baseUrl"`
}

type GeocodeConfig struct {
	BaseURL string `json:"baseUrl"`
}

type StoreConfig struct {
	DBPath string `json:"dbPath"`
}

type PipelineConfig struct {
	PageSize  int `json:"pageSize"`
	BatchSize int `json:"batchSize"`
}

type ScheduleConfig struct {
	Enabled bool   `json:"enabled"`
	Expr    string `json:"expr"`
	Range   string `json:"range"`
}

type TelegramConfig struct {
	Enabled bool   `json:"enabled"`
	Token   string `json:"token"`
	ChatID  int64  `json:"chatId"`
}

func DefaultConfig() *Config {
	return &Config{
		Library:  LibraryConfig{BaseURL: DefaultLibraryURL},
		Geocode:  GeocodeConfig{BaseURL: DefaultGeocodeURL},
		Store:    StoreConfig{DBPath: filepath.Join(ConfigDir(), "photowrap.db")},
		Pipeline: PipelineConfig{PageSize: DefaultPageSize, BatchSize: DefaultBatchSize},
		Schedule: ScheduleConfig{
			Expr:  DefaultScheduleExpr,
			Range: DefaultScheduleRange,
		},
	}
}

func ConfigDir() string {
	home := os.Getenv("HOME")
	if home == "" {
		home, _ = os.UserHomeDir()
	}
	return filepath.Join(home, ".photowrap")
}

func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// LoadConfig merges the config file (if present) over defaults, then applies
// PHOTOWRAP_* environment overrides.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if url := os.Getenv("PHOTOWRAP_LIBRARY_URL"); url != "" {
		cfg.Library.BaseURL = url
	}
	if url := os.Getenv("PHOTOWRAP_GEOCODE_URL"); url != "" {
		cfg.Geocode.BaseURL = url
	}
	if path := os.Getenv("PHOTOWRAP_DB_PATH"); path != "" {
		cfg.Store.DBPath = path
	}
	if token := os.Getenv("PHOTOWRAP_TELEGRAM_TOKEN"); token != "" {
		cfg.Telegram.Token = token
		cfg.Telegram.Enabled = true
	}
	if chat := os.Getenv("PHOTOWRAP_TELEGRAM_CHAT_ID"); chat != "" {
		if parsed, err := strconv.ParseInt(chat, 10, 64); err == nil {
			cfg.Telegram.ChatID = parsed
		}
	}

	if cfg.Pipeline.PageSize <= 0 {
		cfg.Pipeline.PageSize = DefaultPageSize
	}
	if cfg.Pipeline.BatchSize <= 0 {
		cfg.Pipeline.BatchSize = DefaultBatchSize
	}

	return cfg, nil
}

// Save writes the config file, creating the config directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(ConfigDir(), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(ConfigPath(), data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
