package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var (
	ErrConfigNotFound     = errors.New("configuration file not found")
	ErrUnsupportedVersion = errors.New("unsupported configuration version")
	ErrInvalidSource      = errors.New("invalid releases.source")
	ErrMissingShareID     = errors.New("releases.outline.share_id is required")
	ErrMissingAPIBaseURL  = errors.New("releases.outline.api_base_url is required")
	ErrMissingLocalDir    = errors.New("releases.local_dir is required for the local source")
	ErrInvalidAPI         = errors.New("invalid api entry")
	ErrDuplicateAPI       = errors.New("duplicate api name")
	ErrTicketTemplate     = errors.New("tickets.url_template must contain {id}")
	ErrInvalidDuration    = errors.New("invalid duration")
)

// Validate checks a defaulted configuration.
func Validate(cfg *Config) error {
	if err := validateReleases(&cfg.Releases); err != nil {
		return err
	}
	if err := validateAPIs(cfg.APIs); err != nil {
		return err
	}
	if t := cfg.Tickets.URLTemplate; t != "" && !strings.Contains(t, "{id}") {
		return fmt.Errorf("%w: %q", ErrTicketTemplate, t)
	}
	if err := validateDuration("http.timeout", cfg.HTTP.Timeout); err != nil {
		return err
	}
	if cfg.Daemon != nil {
		if err := validateDuration("daemon.interval", cfg.Daemon.Interval); err != nil {
			return err
		}
	}
	return nil
}

func validateReleases(r *ReleasesConfig) error {
	switch r.Source {
	case SourceOutline:
		if r.Outline.ShareID == "" {
			return ErrMissingShareID
		}
		if r.Outline.APIBaseURL == "" {
			return ErrMissingAPIBaseURL
		}
		if _, err := url.ParseRequestURI(r.Outline.APIBaseURL); err != nil {
			return fmt.Errorf("releases.outline.api_base_url: %w", err)
		}
	case SourceLocal:
		if r.LocalDir == "" {
			return ErrMissingLocalDir
		}
	default:
		return fmt.Errorf("%w: %q (expected outline or local)", ErrInvalidSource, r.Source)
	}
	return nil
}

func validateAPIs(apis []APIConfig) error {
	seen := make(map[string]struct{}, len(apis))
	for i, api := range apis {
		switch {
		case api.Name == "":
			return fmt.Errorf("%w: apis[%d].name is required", ErrInvalidAPI, i)
		case api.Source == "":
			return fmt.Errorf("%w: apis[%d].source is required", ErrInvalidAPI, i)
		case api.Output == "":
			return fmt.Errorf("%w: apis[%d].output is required", ErrInvalidAPI, i)
		}
		if _, dup := seen[api.Name]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateAPI, api.Name)
		}
		seen[api.Name] = struct{}{}
	}
	return nil
}

func validateDuration(field, raw string) error {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("%w: %s=%q", ErrInvalidDuration, field, raw)
	}
	if d <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidDuration, field)
	}
	return nil
}
