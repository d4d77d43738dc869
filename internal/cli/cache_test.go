package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiixTT/AMS-IO-Agent/pkg/cache"
)

func TestCacheCommands(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", home)

	// Nothing cached yet.
	require.NoError(t, runCLI(t, "cache", "info"))
	require.NoError(t, runCLI(t, "cache", "clear"))

	fc, err := cache.NewFileCache(filepath.Join(home, appName))
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, fc.Set(ctx, "script:T28:a", []byte("a"), time.Hour))
	require.NoError(t, fc.Set(ctx, "script:T180:b", []byte("b"), time.Hour))

	require.NoError(t, runCLI(t, "cache", "info"))
	require.NoError(t, runCLI(t, "cache", "clear"))

	st, err := fc.Stats()
	require.NoError(t, err)
	assert.Zero(t, st.Entries)

	entries, err := os.ReadDir(fc.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.Error(t, runCLI(t, "cache", "path", "extra"))
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 << 20, "5.0 MiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, humanBytes(tt.n), "humanBytes(%d)", tt.n)
	}
}
