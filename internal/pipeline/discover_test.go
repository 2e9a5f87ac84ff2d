package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverSortsAndFilters(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"video_0446.mp4", "video_0002.mp4", "teaser.mp4", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	files, err := Discover(dir, "video_*.mp4")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "video_0002.mp4"),
		filepath.Join(dir, "video_0446.mp4"),
	}, files)
}

func TestDiscoverEmpty(t *testing.T) {
	files, err := Discover(t.TempDir(), "video_*.mp4")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestTempPath(t *testing.T) {
	p := filepath.Join("media", "video_0446.mp4")

	a := tempPath(p)
	b := tempPath(p)

	assert.Equal(t, filepath.Dir(p), filepath.Dir(a))
	assert.Equal(t, ".mp4", filepath.Ext(a))
	assert.NotEqual(t, p, a)
	assert.NotEqual(t, a, b, "temp names carry a random component")
}
