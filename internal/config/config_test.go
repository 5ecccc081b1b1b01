package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalOutline = `version: "1.0"
releases:
  outline:
    api_base_url: https://wiki.example.com/api/
    share_id: abc-123
`

func TestParse_AppliesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(minimalOutline))
	require.NoError(t, err)

	assert.Equal(t, SourceOutline, cfg.Releases.Source)
	assert.Equal(t, "https://wiki.example.com/api", cfg.Releases.Outline.APIBaseURL)
	assert.Equal(t, "releases", cfg.Releases.OutputDir)
	assert.Equal(t, "releases", cfg.Releases.PagePrefix)
	assert.Equal(t, 1, cfg.Releases.ArchiveWindow)
	assert.Equal(t, "images/releases", cfg.Images.Dir)
	assert.Equal(t, "/images/releases", cfg.Images.PublicPath)
	assert.Equal(t, 4, cfg.Images.Concurrency)
	assert.Equal(t, DefaultPlaceholderSuffixes, cfg.Endpoints.PlaceholderSuffixes)
	assert.Equal(t, "docs.json", cfg.Navigation.File)
	assert.Equal(t, "Product Updates", cfg.Navigation.Group)
	assert.Equal(t, "Releases", cfg.Navigation.Tab)
	assert.Equal(t, "Archive", cfg.Navigation.ArchiveGroup)
	assert.Equal(t, ".", cfg.Navigation.ScaffoldRoot)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout())
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Nil(t, cfg.Daemon)
	assert.Equal(t, time.Hour, cfg.DaemonInterval())
}

func TestParse_APILinkBaseDefaultsToOutputDir(t *testing.T) {
	cfg, err := Parse([]byte(minimalOutline + `apis:
  - name: Admin API
    source: https://api.example.com:8443/v1/api-docs.json
    output: api-reference/openapi.json
  - name: Partner API
    source: ./partner.yaml
    output: partner/openapi.json
    link_base: /partner-api-reference/
`))
	require.NoError(t, err)
	require.Len(t, cfg.APIs, 2)
	assert.Equal(t, "api-reference", cfg.APIs[0].LinkBase)
	assert.Equal(t, "partner-api-reference", cfg.APIs[1].LinkBase)
}

func TestParse_ExpandsEnvironment(t *testing.T) {
	t.Setenv("RELNOTES_TEST_SHARE", "from-env")
	cfg, err := Parse([]byte(`version: "1.0"
releases:
  outline:
    api_base_url: https://wiki.example.com/api
    share_id: ${RELNOTES_TEST_SHARE}
logging:
  level: DEBUG
daemon:
  interval: 15m
`))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Releases.Outline.ShareID)
	assert.Equal(t, LogLevelDebug, cfg.Logging.Level)
	assert.Equal(t, 15*time.Minute, cfg.DaemonInterval())
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"wrong version", `version: "2.0"`, ErrUnsupportedVersion},
		{"missing share id", "version: \"1.0\"\nreleases:\n  outline:\n    api_base_url: https://x/api\n", ErrMissingShareID},
		{"missing base url", "version: \"1.0\"\nreleases:\n  outline:\n    share_id: s\n", ErrMissingAPIBaseURL},
		{"unknown source", "version: \"1.0\"\nreleases:\n  source: notion\n", ErrInvalidSource},
		{"local without dir", "version: \"1.0\"\nreleases:\n  source: local\n", ErrMissingLocalDir},
		{"api without output", minimalOutline + "apis:\n  - name: a\n    source: a.json\n", ErrInvalidAPI},
		{"duplicate api", minimalOutline + "apis:\n  - {name: a, source: a.json, output: a/o.json}\n  - {name: a, source: b.json, output: b/o.json}\n", ErrDuplicateAPI},
		{"ticket template", minimalOutline + "tickets:\n  url_template: https://tracker/issue\n", ErrTicketTemplate},
		{"bad timeout", minimalOutline + "http:\n  timeout: soon\n", ErrInvalidDuration},
		{"negative interval", minimalOutline + "daemon:\n  interval: -1m\n", ErrInvalidDuration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestInit_WritesLoadableExample(t *testing.T) {
	t.Setenv("RELNOTES_SHARE_ID", "share-from-env")
	path := filepath.Join(t.TempDir(), "relnotes.yaml")

	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false), "existing file must not be overwritten without force")
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "share-from-env", cfg.Releases.Outline.ShareID)
	require.Len(t, cfg.APIs, 1)
	assert.Equal(t, "api-reference", cfg.APIs[0].LinkBase)
	require.NotNil(t, cfg.Daemon)
	assert.Equal(t, time.Hour, cfg.DaemonInterval())
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.Error(t, loadEnvFile())

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RELNOTES_DOTENV_PROBE=from-dotenv\n"), 0o600))
	t.Setenv("RELNOTES_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("RELNOTES_DOTENV_PROBE"))
	require.NoError(t, loadEnvFile())
	assert.Equal(t, "from-dotenv", os.Getenv("RELNOTES_DOTENV_PROBE"))
}
