package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolved_PrefersLinkerValue(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "v1.2.3"
	assert.Equal(t, "v1.2.3", Resolved())
	assert.Contains(t, String(), "relnotes v1.2.3")
}

func TestString_IncludesBuildInfo(t *testing.T) {
	got := String()
	assert.Contains(t, got, "commit "+GitCommit)
	assert.Contains(t, got, "built "+BuildTime)
}
