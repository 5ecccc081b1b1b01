package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Version: CurrentVersion,
		Releases: ReleasesConfig{
			Source: SourceOutline,
			Outline: OutlineConfig{
				APIBaseURL: "https://wiki.example.com/api",
				ShareID:    "${RELNOTES_SHARE_ID}",
			},
			OutputDir:     "releases",
			PagePrefix:    "releases",
			ArchiveWindow: 1,
		},
		APIs: []APIConfig{
			{Name: "Admin API", Source: "https://api.example.com:8443/v1/api-docs.json", Output: "api-reference/openapi.json"},
		},
		Images: ImagesConfig{
			Dir:         "images/releases",
			PublicPath:  "/images/releases",
			Concurrency: 4,
		},
		Tickets:   TicketsConfig{URLTemplate: "https://linear.app/example/issue/{id}"},
		Endpoints: EndpointsConfig{PlaceholderSuffixes: DefaultPlaceholderSuffixes, LinkReleaseNotes: true},
		Navigation: NavigationConfig{
			File:         "docs.json",
			Group:        "Product Updates",
			Tab:          "Releases",
			ArchiveGroup: "Archive",
		},
		HTTP:    HTTPConfig{Timeout: defaultHTTPTimeout.String()},
		Daemon:  &DaemonConfig{Interval: "1h", MetricsAddr: ":9464", WatchConfig: true},
		Logging: LoggingConfig{Level: LogLevelInfo},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
