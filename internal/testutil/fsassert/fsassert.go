// Package fsassert provides chainable file assertions over an afero
// filesystem for tests.
package fsassert

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Files asserts on the state of fs.
type Files struct {
	t  testing.TB
	fs afero.Fs
}

func New(t testing.TB, fs afero.Fs) *Files {
	return &Files{t: t, fs: fs}
}

// Read returns the file content, failing the test when it cannot be read.
func (f *Files) Read(path string) string {
	f.t.Helper()
	data, err := afero.ReadFile(f.fs, path)
	require.NoError(f.t, err, "read %s", path)
	return string(data)
}

// Exists validates that a file exists.
func (f *Files) Exists(path string) *Files {
	f.t.Helper()
	ok, err := afero.Exists(f.fs, path)
	require.NoError(f.t, err)
	assert.True(f.t, ok, "expected %s to exist", path)
	return f
}

// Missing validates that a file does not exist.
func (f *Files) Missing(path string) *Files {
	f.t.Helper()
	ok, err := afero.Exists(f.fs, path)
	require.NoError(f.t, err)
	assert.False(f.t, ok, "expected %s to be absent", path)
	return f
}

// Contains validates that a file contains every substring.
func (f *Files) Contains(path string, substrings ...string) *Files {
	f.t.Helper()
	content := f.Read(path)
	for _, s := range substrings {
		assert.Contains(f.t, content, s, "in %s", path)
	}
	return f
}

// NotContains validates that a file contains none of the substrings.
func (f *Files) NotContains(path string, substrings ...string) *Files {
	f.t.Helper()
	content := f.Read(path)
	for _, s := range substrings {
		assert.NotContains(f.t, content, s, "in %s", path)
	}
	return f
}
