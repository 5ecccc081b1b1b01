package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only configuration schema version accepted by Load.
const CurrentVersion = "1.0"

// Config is the relnotes configuration file.
type Config struct {
	Version    string           `yaml:"version"`
	Releases   ReleasesConfig   `yaml:"releases"`
	APIs       []APIConfig      `yaml:"apis,omitempty"`
	Images     ImagesConfig     `yaml:"images"`
	Tickets    TicketsConfig    `yaml:"tickets"`
	Endpoints  EndpointsConfig  `yaml:"endpoints"`
	Navigation NavigationConfig `yaml:"navigation"`
	HTTP       HTTPConfig       `yaml:"http"`
	Daemon     *DaemonConfig    `yaml:"daemon,omitempty"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// ReleasesConfig selects where change-log documents come from and where pages go.
type ReleasesConfig struct {
	Source    SourceKind    `yaml:"source"` // outline | local
	Outline   OutlineConfig `yaml:"outline"`
	LocalDir  string        `yaml:"local_dir,omitempty"`
	OutputDir string        `yaml:"output_dir"`
	// PagePrefix is the navigation path of OutputDir, e.g. "releases".
	PagePrefix string `yaml:"page_prefix"`
	// ArchiveWindow is how many years before the current one stay on the index page.
	ArchiveWindow int `yaml:"archive_window"`
}

// OutlineConfig addresses a publicly shared document tree.
type OutlineConfig struct {
	APIBaseURL string `yaml:"api_base_url"`
	ShareID    string `yaml:"share_id"`
}

// APIConfig describes one API description to mirror and document.
type APIConfig struct {
	Name string `yaml:"name"`
	// Source is an http(s) URL or a local file path (JSON or YAML).
	Source string `yaml:"source"`
	// Output is where the normalised JSON copy is written; intro and changelog pages go next to it.
	Output string `yaml:"output"`
	// LinkBase is the documentation directory operations are published under.
	// Defaults to the directory of Output.
	LinkBase string `yaml:"link_base,omitempty"`
}

type ImagesConfig struct {
	Dir         string `yaml:"dir"`
	PublicPath  string `yaml:"public_path"`
	Concurrency int    `yaml:"concurrency"`
	MaxBytes    int64  `yaml:"max_bytes"`
}

type TicketsConfig struct {
	// URLTemplate must contain {id}. Empty disables ticket linking.
	URLTemplate string `yaml:"url_template"`
}

type EndpointsConfig struct {
	// PlaceholderSuffixes are appended to unresolved paths, in order.
	PlaceholderSuffixes []string `yaml:"placeholder_suffixes"`
	// LinkReleaseNotes links endpoint mentions in release notes against every configured API.
	LinkReleaseNotes bool `yaml:"link_release_notes"`
}

type NavigationConfig struct {
	File         string `yaml:"file"`
	Group        string `yaml:"group"`
	Tab          string `yaml:"tab"`
	ArchiveGroup string `yaml:"archive_group"`
	// ScaffoldRoot is the directory page paths in File are relative to.
	ScaffoldRoot string `yaml:"scaffold_root"`
}

type HTTPConfig struct {
	Timeout   string `yaml:"timeout"`
	UserAgent string `yaml:"user_agent"`
}

type DaemonConfig struct {
	Interval    string `yaml:"interval"`
	MetricsAddr string `yaml:"metrics_addr,omitempty"`
	WatchConfig bool   `yaml:"watch_config"`
}

type LoggingConfig struct {
	Level LogLevel `yaml:"level"`
}

// SourceKind enumerates document sources.
type SourceKind string

const (
	SourceOutline SourceKind = "outline"
	SourceLocal   SourceKind = "local"
)

// HTTPTimeout returns the parsed client timeout. Validation guarantees it parses.
func (c *Config) HTTPTimeout() time.Duration {
	d, err := time.ParseDuration(c.HTTP.Timeout)
	if err != nil {
		return defaultHTTPTimeout
	}
	return d
}

// DaemonInterval returns the parsed daemon run interval.
func (c *Config) DaemonInterval() time.Duration {
	if c.Daemon == nil {
		return defaultDaemonInterval
	}
	d, err := time.ParseDuration(c.Daemon.Interval)
	if err != nil {
		return defaultDaemonInterval
	}
	return d
}

// Load reads, expands, defaults and validates the configuration file at path.
func Load(configPath string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		fmt.Fprintf(os.Stderr, "Note: .env file not found or couldn't be loaded: %v\n", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse is Load without the file system: expand ${VAR}, unmarshal, default, validate.
func Parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.Version != CurrentVersion {
		return nil, fmt.Errorf("%w: %q (expected %s)", ErrUnsupportedVersion, cfg.Version, CurrentVersion)
	}

	applyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}
