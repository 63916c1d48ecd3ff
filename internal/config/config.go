// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values and validate

package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigPath = "configs/config.yaml"
	DefaultOutputDir  = "output/"
	DefaultBaseURL    = "https://www.glassdoor.fr"
	DefaultNavTimeout = 30000
	DefaultPort       = "8080"
)

var ErrMissingGroup = errors.New("you need to specify GROUP environment variable")

type Config struct {
	Group        string `yaml:"group" env:"GROUP"`
	JobsLink     string `yaml:"jobs_link" env:"JOBS_LINK"`
	SalariesLink string `yaml:"salaries_link" env:"SALARIES_LINK"`
	OutputDir    string `yaml:"output_dir" env:"OUTPUT_DIR"`
	BaseURL      string `yaml:"base_url" env:"BASE_URL"`

	// Browser
	Headless      *bool   `yaml:"headless" env:"HEADLESS"`
	NavTimeoutMs  int     `yaml:"nav_timeout_ms" env:"NAV_TIMEOUT_MS"`
	RateLimit     float64 `yaml:"rate_limit" env:"RATE_LIMIT"`
	NavDelayMinMs int     `yaml:"nav_delay_min_ms" env:"NAV_DELAY_MIN_MS"`
	NavDelayMaxMs int     `yaml:"nav_delay_max_ms" env:"NAV_DELAY_MAX_MS"`
	CookiesPath   string  `yaml:"cookies_path" env:"COOKIES_PATH"`
	ScreenshotDir string  `yaml:"screenshot_dir" env:"SCREENSHOT_DIR"`

	// Run behaviour
	PersistPartial *bool         `yaml:"persist_partial" env:"PERSIST_PARTIAL"`
	RunTimeout     time.Duration `yaml:"run_timeout" env:"RUN_TIMEOUT"`
	LogFile        string        `yaml:"log_file" env:"LOG_FILE"`

	// Optional integrations
	TelegramToken  string `yaml:"telegram_token" env:"TELEGRAM_BOT_TOKEN"`
	TelegramChatID int64  `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`
	DatabaseURL    string `yaml:"database_url" env:"DATABASE_URL"`
	Port           string `yaml:"port" env:"PORT"`
}

// Load builds the scraper configuration from .env, the optional YAML file and
// the process environment, in increasing order of precedence. GROUP is
// required.
func Load() (*Config, error) {
	cfg, err := LoadShared()
	if err != nil {
		return nil, err
	}
	if cfg.Group == "" {
		return nil, ErrMissingGroup
	}
	return cfg, nil
}

// LoadShared is Load without the GROUP requirement, for processes that serve
// every group.
func LoadShared() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultConfigPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("⚠️ Could not read %s: %v", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Group, "GROUP")
	setString(&c.JobsLink, "JOBS_LINK")
	setString(&c.SalariesLink, "SALARIES_LINK")
	setString(&c.OutputDir, "OUTPUT_DIR")
	setString(&c.BaseURL, "BASE_URL")
	setString(&c.CookiesPath, "COOKIES_PATH")
	setString(&c.ScreenshotDir, "SCREENSHOT_DIR")
	setString(&c.LogFile, "LOG_FILE")
	setString(&c.TelegramToken, "TELEGRAM_BOT_TOKEN")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.Port, "PORT")

	if v := os.Getenv("HEADLESS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid HEADLESS: %w", err)
		}
		c.Headless = &b
	}
	if v := os.Getenv("PERSIST_PARTIAL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid PERSIST_PARTIAL: %w", err)
		}
		c.PersistPartial = &b
	}

	for _, f := range []struct {
		key string
		dst *int
	}{
		{"NAV_TIMEOUT_MS", &c.NavTimeoutMs},
		{"NAV_DELAY_MIN_MS", &c.NavDelayMinMs},
		{"NAV_DELAY_MAX_MS", &c.NavDelayMaxMs},
	} {
		if v := os.Getenv(f.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", f.key, err)
			}
			*f.dst = n
		}
	}

	if v := os.Getenv("RATE_LIMIT"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid RATE_LIMIT: %w", err)
		}
		c.RateLimit = r
	}

	if v := os.Getenv("RUN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid RUN_TIMEOUT: %w", err)
		}
		c.RunTimeout = d
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.TelegramChatID = id
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.OutputDir == "" {
		c.OutputDir = DefaultOutputDir
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.NavTimeoutMs <= 0 {
		c.NavTimeoutMs = DefaultNavTimeout
	}
	if c.NavDelayMaxMs < c.NavDelayMinMs {
		c.NavDelayMaxMs = c.NavDelayMinMs
	}
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.Headless == nil {
		c.Headless = boolPtr(true)
	}
	if c.PersistPartial == nil {
		c.PersistPartial = boolPtr(true)
	}
}

// IsHeadless reports the browser mode, headless unless configured otherwise.
func (c *Config) IsHeadless() bool {
	return c.Headless == nil || *c.Headless
}

// ShouldPersistPartial reports whether a stage that recorded failures still
// persists the records it did collect.
func (c *Config) ShouldPersistPartial() bool {
	return c.PersistPartial == nil || *c.PersistPartial
}

// TelegramEnabled reports whether both Telegram credentials are present.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func boolPtr(b bool) *bool {
	return &b
}
