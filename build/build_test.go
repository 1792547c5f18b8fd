package build_test

import (
	"runtime"
	"testing"

	"github.com/amp-labs/atm/build"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	info, ok := build.Parse(`{
		"version": "v1.2.0",
		"git_commit": "abc123",
		"git_branch": "main",
		"build_time": "2026-10-05T12:00:00Z",
		"go_version": "go1.25.5"
	}`)

	require.True(t, ok)
	assert.Equal(t, "v1.2.0", info.Version)
	assert.Equal(t, "abc123", info.GitCommit)
	assert.Equal(t, "main", info.GitBranch)
	assert.Equal(t, "go1.25.5", info.GoVersion)
}

func TestParseRejects(t *testing.T) {
	t.Parallel()

	for _, js := range []string{"", "{}", `{"version": `} {
		info, ok := build.Parse(js)
		assert.False(t, ok, js)
		assert.Nil(t, info, js)
	}
}

func TestCurrent(t *testing.T) {
	t.Parallel()

	info := build.Current("dev", "")
	assert.NotEmpty(t, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)

	info = build.Current("dev", `{"version": "v9.9.9", "go_version": "go1.0"}`)
	assert.Equal(t, "v9.9.9", info.Version)
	assert.Equal(t, "go1.0", info.GoVersion)
}
