package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultServerURL   = "https://artifactory.tools.roku.com/artifactory"
	DefaultHistoryFile = "results.txt"

	EnvServer  = "CI_DOWNLOADER_SERVER"
	EnvHistory = "CI_DOWNLOADER_HISTORY"
)

// DefaultDevices is the STB catalog offered as input suggestions.
var DefaultDevices = []string{
	"amarillo1080", "amarillo4k", "athens", "austin", "bandera",
	"benjamin", "briscoe", "bryan", "camden", "chico", "cooper",
	"dallas", "elpasso", "fruitland4k", "ftworth", "gilbert", "gilbert4k",
	"liberty", "littlefield", "logan", "longview", "madison", "malone",
	"marlin", "miami", "midland", "mustang", "nemo", "reno", "rockett",
	"roma", "sugarland",
}

// DefaultTVBrands are substrings matched against search result URIs in TV mode.
var DefaultTVBrands = []string{
	"tcl-tcl", "his-his", "device2", "device3", "device4",
	"device5", "device6", "device7",
}

type Config struct {
	ServerURL   string        `yaml:"server_url"`
	HistoryFile string        `yaml:"history_file"`
	Timeout     time.Duration `yaml:"timeout"` // zero means no timeout
	Devices     []string      `yaml:"devices"`
	TVBrands    []string      `yaml:"tv_brands"`
	Debug       bool          `yaml:"debug"`
	DebugLog    string        `yaml:"debug_log"`
}

func Default() Config {
	return Config{
		ServerURL:   DefaultServerURL,
		HistoryFile: DefaultHistoryFile,
		Devices:     append([]string(nil), DefaultDevices...),
		TVBrands:    append([]string(nil), DefaultTVBrands...),
		DebugLog:    filepath.Join(os.TempDir(), "ci-downloader.log"),
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "ci-downloader", "config.yml")
}

// Load reads path over the defaults and applies environment overrides.
// A missing file is only an error when explicit is true.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("read config: %w", err)
		}
	}
	cfg.applyEnv()
	if len(cfg.Devices) == 0 {
		cfg.Devices = append([]string(nil), DefaultDevices...)
	}
	if len(cfg.TVBrands) == 0 {
		cfg.TVBrands = append([]string(nil), DefaultTVBrands...)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvServer); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv(EnvHistory); v != "" {
		c.HistoryFile = v
	}
}

func (c Config) Validate() error {
	if c.ServerURL == "" {
		return fmt.Errorf("server URL is required (use --server)")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server URL must be http or https, got %q", c.ServerURL)
	}
	if strings.TrimSpace(c.HistoryFile) == "" {
		return fmt.Errorf("history file path is required (use --history)")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
