package config

import (
	"path"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout    = 10 * time.Second
	defaultDaemonInterval = time.Hour
	defaultUserAgent      = "relnotes (+https://git.home.luguber.info/inful/relnotes)"
)

// DefaultPlaceholderSuffixes are tried, in order, when an endpoint mention has no exact match.
var DefaultPlaceholderSuffixes = []string{"/{id}", "/{uuid}", "/{orderId}", "/{customerId}"}

func applyDefaults(cfg *Config) {
	r := &cfg.Releases
	if r.Source == "" {
		r.Source = SourceOutline
	}
	r.Source = SourceKind(strings.ToLower(strings.TrimSpace(string(r.Source))))
	if r.OutputDir == "" {
		r.OutputDir = "releases"
	}
	if r.PagePrefix == "" {
		r.PagePrefix = path.Clean(strings.Trim(r.OutputDir, "./"))
	}
	if r.ArchiveWindow <= 0 {
		r.ArchiveWindow = 1
	}
	r.Outline.APIBaseURL = strings.TrimRight(r.Outline.APIBaseURL, "/")

	for i := range cfg.APIs {
		api := &cfg.APIs[i]
		if api.LinkBase == "" && api.Output != "" {
			api.LinkBase = path.Dir(api.Output)
		}
		api.LinkBase = strings.Trim(api.LinkBase, "/")
	}

	if cfg.Images.Dir == "" {
		cfg.Images.Dir = "images/releases"
	}
	if cfg.Images.PublicPath == "" {
		cfg.Images.PublicPath = "/" + strings.Trim(cfg.Images.Dir, "/")
	}
	if cfg.Images.Concurrency <= 0 {
		cfg.Images.Concurrency = 4
	}
	if cfg.Images.MaxBytes <= 0 {
		cfg.Images.MaxBytes = 20 << 20
	}

	if len(cfg.Endpoints.PlaceholderSuffixes) == 0 {
		cfg.Endpoints.PlaceholderSuffixes = append([]string(nil), DefaultPlaceholderSuffixes...)
	}

	n := &cfg.Navigation
	if n.File == "" {
		n.File = "docs.json"
	}
	if n.Group == "" {
		n.Group = "Product Updates"
	}
	if n.Tab == "" {
		n.Tab = "Releases"
	}
	if n.ArchiveGroup == "" {
		n.ArchiveGroup = "Archive"
	}
	if n.ScaffoldRoot == "" {
		n.ScaffoldRoot = path.Dir(n.File)
	}

	if cfg.HTTP.Timeout == "" {
		cfg.HTTP.Timeout = defaultHTTPTimeout.String()
	}
	if cfg.HTTP.UserAgent == "" {
		cfg.HTTP.UserAgent = defaultUserAgent
	}

	if cfg.Daemon != nil && cfg.Daemon.Interval == "" {
		cfg.Daemon.Interval = defaultDaemonInterval.String()
	}

	cfg.Logging.Level = NormalizeLogLevel(string(cfg.Logging.Level))
}
