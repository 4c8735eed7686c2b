// Package config loads client settings from an optional YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults.
const (
	DefaultAPIURL            = "https://ashleyinventorybe-production.up.railway.app/api"
	DefaultTimeout           = 10 * time.Second
	DefaultStateDB           = "popis.sqlite3"
	DefaultExportFormat      = "csv"
	DefaultImageMaxDimension = 1024
)

// Config holds the client settings.
type Config struct {
	APIURL            string        `yaml:"api_url"`
	Timeout           time.Duration `yaml:"timeout"`
	StateDB           string        `yaml:"state_db"`
	ExportDir         string        `yaml:"export_dir"`
	ExportFormat      string        `yaml:"export_format"`
	ShareCommand      string        `yaml:"share_command"`
	LogPath           string        `yaml:"log"`
	ImageMaxDimension int           `yaml:"image_max_dimension"`
}

// Default returns the built-in configuration.
func Default() *Config {
	share := "xdg-open"
	if runtime.GOOS == "darwin" {
		share = "open"
	}
	return &Config{
		APIURL:            DefaultAPIURL,
		Timeout:           DefaultTimeout,
		StateDB:           DefaultStateDB,
		ExportDir:         os.TempDir(),
		ExportFormat:      DefaultExportFormat,
		ShareCommand:      share,
		ImageMaxDimension: DefaultImageMaxDimension,
	}
}

// Load reads path over the defaults, then applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}

	cfg.APIURL = getEnv("POPIS_API_URL", cfg.APIURL)
	cfg.StateDB = getEnv("POPIS_STATE_DB", cfg.StateDB)
	cfg.ExportDir = getEnv("POPIS_EXPORT_DIR", cfg.ExportDir)
	cfg.ExportFormat = getEnv("POPIS_EXPORT_FORMAT", cfg.ExportFormat)
	cfg.ShareCommand = getEnv("POPIS_SHARE_COMMAND", cfg.ShareCommand)
	cfg.LogPath = getEnv("POPIS_LOG", cfg.LogPath)

	if v := os.Getenv("POPIS_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parsing POPIS_TIMEOUT: %w", err)
		}
		cfg.Timeout = timeout
	}
	if v := os.Getenv("POPIS_IMAGE_MAX_DIMENSION"); v != "" {
		dim, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parsing POPIS_IMAGE_MAX_DIMENSION: %w", err)
		}
		cfg.ImageMaxDimension = dim
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	if c.APIURL == "" {
		errs = append(errs, errors.New("api_url is required"))
	} else if u, err := url.Parse(c.APIURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, fmt.Errorf("api_url %q must be an absolute http(s) URL", c.APIURL))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive, got %s", c.Timeout))
	}
	if c.StateDB == "" {
		errs = append(errs, errors.New("state_db is required"))
	}
	switch strings.ToLower(c.ExportFormat) {
	case "csv", "xlsx":
	default:
		errs = append(errs, fmt.Errorf("export_format %q must be csv or xlsx", c.ExportFormat))
	}
	if c.ImageMaxDimension <= 0 {
		errs = append(errs, fmt.Errorf("image_max_dimension must be positive, got %d", c.ImageMaxDimension))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// LoadAndValidate loads the configuration and validates it.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
