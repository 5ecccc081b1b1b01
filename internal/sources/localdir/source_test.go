package localdir

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocuments(t *testing.T) {
	fs := afero.NewMemMapFs()
	files := map[string]string{
		"notes/b.md":           "---\ntitle: \"R12: Spring - 3rd March 2024\"\n---\nMain body\n",
		"notes/a.md":           "R11 body",
		"notes/sub/c.mdx":      "---\ntitle: [broken\n---\nbody",
		"notes/readme.txt":     "ignored",
		"notes/sub/d.MARKDOWN": "upper ext",
	}
	for p, content := range files {
		require.NoError(t, afero.WriteFile(fs, p, []byte(content), 0o644))
	}

	batch, err := New(fs, "notes").Documents(context.Background())
	require.NoError(t, err)

	require.Len(t, batch.Documents, 3)
	assert.Equal(t, "a", batch.Documents[0].Title)
	assert.Equal(t, "R11 body", batch.Documents[0].Body)
	assert.Equal(t, "R12: Spring - 3rd March 2024", batch.Documents[1].Title)
	assert.Equal(t, "Main body\n", batch.Documents[1].Body)
	assert.Equal(t, "d", batch.Documents[2].Title)

	require.Len(t, batch.Failures, 1)
	assert.Equal(t, "sub/c.mdx", batch.Failures[0].ID)
}

func TestDocuments_MissingDir(t *testing.T) {
	_, err := New(afero.NewMemMapFs(), "nope").Documents(context.Background())
	require.Error(t, err)
}
