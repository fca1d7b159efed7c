package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields starcat needs to reach the catalog API.
type Config struct {
	APIURL         string `toml:"api_url" env:"STARCAT_API_URL"`
	TimeoutSeconds int    `toml:"request_timeout_seconds" env:"STARCAT_TIMEOUT_SECONDS"`
	PageSize       int    `toml:"page_size" env:"STARCAT_PAGE_SIZE"`
}

// PageSizes lists the client page widths the UI offers.
var PageSizes = []int{5, 10, 25, 100}

const (
	defaultConfigPath = "~/.config/starcat/config.toml"
	defaultAPIURL     = "127.0.0.1:8640"
	defaultTimeout    = 10
	defaultPageSize   = 10
)

// Load locates and parses the starcat config, falling back to defaults when
// the file is missing. Environment variables override file values.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIURL:         defaultAPIURL,
		TimeoutSeconds: defaultTimeout,
		PageSize:       defaultPageSize,
	}

	file, err := os.Open(resolved)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("open config: %w", err)
		}
	} else {
		defer func() { _ = file.Close() }()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg.APIURL = strings.TrimSpace(cfg.APIURL)
	if cfg.APIURL == "" {
		cfg.APIURL = defaultAPIURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = defaultTimeout
	}
	if !ValidPageSize(cfg.PageSize) {
		return Config{}, fmt.Errorf("page_size %d not in %v", cfg.PageSize, PageSizes)
	}

	return cfg, nil
}

// Timeout returns the request timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ValidPageSize reports whether size is one of the offered page widths.
func ValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if size == s {
			return true
		}
	}
	return false
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
