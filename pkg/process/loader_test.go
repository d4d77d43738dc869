package process

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiixTT/AMS-IO-Agent/pkg/errors"
)

func TestLoadEmbedded(t *testing.T) {
	l := NewLoader("")

	t28, err := l.Load(T28)
	require.NoError(t, err)
	assert.Equal(t, "tphn28hpcpgv18", t28.Layout.Library)
	assert.Equal(t, 20.0, t28.Layout.PadWidth)
	assert.Equal(t, 110.0, t28.Layout.PadHeight)
	assert.Equal(t, 110.0, t28.Layout.CornerSize)
	assert.Equal(t, 60.0, t28.Layout.PadSpacing)
	assert.Equal(t, 20.0, t28.Layout.PadOffset)
	assert.Equal(t, "PRCUTA_G", t28.Fillers.Separator)
	assert.False(t, t28.Substrate.Enabled)
	assert.Equal(t, "configs/t28.toml", t28.Source)
	assert.Len(t, t28.Hash, 64)

	t180, err := l.Load(T180)
	require.NoError(t, err)
	assert.Equal(t, "tpd018bcdnv5", t180.Layout.Library)
	assert.Equal(t, 80.0, t180.Layout.PadWidth)
	assert.Equal(t, 120.0, t180.Layout.PadHeight)
	assert.Equal(t, 130.0, t180.Layout.CornerSize)
	assert.Equal(t, 90.0, t180.Layout.PadSpacing)
	assert.Equal(t, 10.0, t180.Layout.PadOffset)
	assert.True(t, t180.Substrate.Enabled)
	assert.Equal(t, 56.395, t180.Skill.DigitalIO.PinOffsets["C"])
	assert.Equal(t, 120.0, t180.Fillers.Inset.Top)
	assert.Equal(t, 0.0, t180.Fillers.Inset.Bottom)
}

func TestLoadIsCachedPerNode(t *testing.T) {
	l := NewLoader("")

	var wg sync.WaitGroup
	results := make([]*Config, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cfg, err := l.Load(T180)
			if err != nil {
				t.Errorf("Load: %v", err)
				return
			}
			results[i] = cfg
		}(i)
	}
	wg.Wait()

	for i, cfg := range results {
		if cfg != results[0] {
			t.Fatalf("Load #%d returned a different *Config; documents must be read once", i)
		}
	}
}

func TestLoadUnsupportedNode(t *testing.T) {
	_, err := NewLoader("").Load(Node("T65"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidProcessNode))
}

func TestLoadOverrideMissingFile(t *testing.T) {
	dir := t.TempDir()
	_, err := NewLoader(dir).Load(T28)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
	assert.Contains(t, err.Error(), filepath.Join(dir, "t28.toml"))
}

func TestLoadOverrideMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t180.toml")
	require.NoError(t, os.WriteFile(path, []byte("node = \"T180\"\n[layout\n"), 0644))

	l := NewLoader(dir)
	_, err := l.Load(T180)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigMalformed))
	assert.Contains(t, err.Error(), path)

	// The failure is remembered.
	_, err2 := l.Load(T180)
	assert.Equal(t, err, err2)
}

func TestLoadOverrideValid(t *testing.T) {
	data, err := embedded.ReadFile("configs/t28.toml")
	require.NoError(t, err)
	custom := strings.Replace(string(data), "pad_spacing = 60", "pad_spacing = 80", 1)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "t28.toml"), []byte(custom), 0644))

	cfg, err := NewLoader(dir).Load(T28)
	require.NoError(t, err)
	assert.Equal(t, 80.0, cfg.Layout.PadSpacing)
	assert.Equal(t, filepath.Join(dir, "t28.toml"), cfg.Source)
}

func TestLoadOverrideWrongNode(t *testing.T) {
	data, err := embedded.ReadFile("configs/t28.toml")
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "t180.toml"), data, 0644))

	_, err = NewLoader(dir).Load(T180)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigMalformed))
}

func TestParseRejects(t *testing.T) {
	base, err := embedded.ReadFile("configs/t28.toml")
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(string) string
		message string
	}{
		{
			name: "unknown key",
			mutate: func(s string) string {
				return strings.Replace(s, "pad_offset = 20", "pad_offset = 20\npad_offsett = 1", 1)
			},
			message: "unknown keys",
		},
		{
			name: "overlapping sets",
			mutate: func(s string) string {
				return strings.Replace(s, `separator = ["PRCUTA_G"]`, `separator = ["PRCUTA_G", "PFILLER20_G"]`, 1)
			},
			message: "sets overlap",
		},
		{
			name: "bad placement order",
			mutate: func(s string) string {
				return strings.Replace(s, `placement_order = "counterclockwise"`, `placement_order = "spiral"`, 1)
			},
			message: "placement_order",
		},
		{
			name:    "non-positive pad width",
			mutate:  func(s string) string { return strings.Replace(s, "pad_width = 20", "pad_width = 0", 1) },
			message: "pad_width",
		},
		{
			name:    "narrow wider than standard",
			mutate:  func(s string) string { return strings.Replace(s, "narrow_width = 10", "narrow_width = 30", 1) },
			message: "narrow_width",
		},
		{
			name:    "separator width missing",
			mutate:  func(s string) string { return strings.Replace(s, "separator_width = 20\n", "", 1) },
			message: "separator_width must be positive",
		},
		{
			name:    "separator width does not tile a gap",
			mutate:  func(s string) string { return strings.Replace(s, "separator_width = 20", "separator_width = 15", 1) },
			message: "does not tile",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.mutate(string(base))), "test.toml")
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeConfigMalformed))
			assert.Contains(t, err.Error(), tt.message)
			assert.Contains(t, err.Error(), "test.toml")
		})
	}
}
