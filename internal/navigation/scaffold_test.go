package navigation

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectPages(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeNav(t, fs, `{"navigation": {"tabs": [
  {"tab": "Guides", "groups": [{"group": "Start", "pages": ["intro", "guides/setup", {"group": "Deep", "pages": ["guides/deep-dive", "intro"]}]}]},
  {"tab": "API", "groups": [{"group": "Ref", "pages": ["https://example.com/ext", {"page": "api/get_user"}]}]}
  ]}}`)

	pages, err := CollectPages(fs, "docs.json")
	require.NoError(t, err)
	assert.Equal(t, []string{"intro", "guides/setup", "guides/deep-dive", "https://example.com/ext", "api/get_user"}, pages)
}

func TestPrettyTitle(t *testing.T) {
	assert.Equal(t, "Get User", PrettyTitle("api-reference/get-user"))
	assert.Equal(t, "Get User", PrettyTitle("api/get_user.mdx"))
	assert.Equal(t, "Intro", PrettyTitle("intro"))
}

func TestScaffold(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "site/intro.mdx", []byte("exists"), 0o644))

	created, err := Scaffold(fs, "site", []string{"intro", "guides/setup", "https://example.com/x", "api/ref.mdx"})
	require.NoError(t, err)
	assert.Equal(t, []string{"site/guides/setup.mdx", "site/api/ref.mdx"}, created)

	data, err := afero.ReadFile(fs, "site/guides/setup.mdx")
	require.NoError(t, err)
	assert.Contains(t, string(data), "title: \"Setup\"\ndescription: \"Documentation for Setup\"\n---\n")
	assert.Contains(t, string(data), "<Warning>\n**Work in Progress**")

	intro, err := afero.ReadFile(fs, "site/intro.mdx")
	require.NoError(t, err)
	assert.Equal(t, "exists", string(intro))

	created, err = Scaffold(fs, "site", []string{"guides/setup"})
	require.NoError(t, err)
	assert.Empty(t, created)
}
