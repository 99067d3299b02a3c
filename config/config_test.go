package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	Conf = Config{}
	assert.Equal(t, DefaultMaxBlockValues, GetMaxBlockValues())
	assert.Equal(t, DefaultBenchCount, GetBenchCount())
	assert.Equal(t, int64(DefaultBenchSeed), GetBenchSeed())
	assert.Equal(t, DefaultBenchMaxWidth, GetBenchMaxWidth())
	assert.Equal(t, "", GetLogConfigPath())
}

func TestLoad(t *testing.T) {
	t.Cleanup(func() { Conf = Config{} })

	dir := t.TempDir()
	path := filepath.Join(dir, "config.ini")
	content := `log_config = /etc/varwidth/log.ini

[column]
max_block_values = 128

[bench]
count = 500
seed = 99
max_width = 3
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	require.NoError(t, Load(path))

	assert.Equal(t, 128, GetMaxBlockValues())
	assert.Equal(t, 500, GetBenchCount())
	assert.Equal(t, int64(99), GetBenchSeed())
	assert.Equal(t, 3, GetBenchMaxWidth())
	assert.Equal(t, "/etc/varwidth/log.ini", GetLogConfigPath())
}

func TestLoad_InvalidWidthFallsBack(t *testing.T) {
	t.Cleanup(func() { Conf = Config{} })

	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[bench]\nmax_width = 12\n"), 0644))
	require.NoError(t, Load(path))
	assert.Equal(t, DefaultBenchMaxWidth, GetBenchMaxWidth())
}

func TestLoad_MissingFile(t *testing.T) {
	Conf = Config{Bench: BenchConfig{Count: 7}}
	t.Cleanup(func() { Conf = Config{} })

	require.NoError(t, Load(filepath.Join(t.TempDir(), "missing.ini")))
	assert.Equal(t, 7, GetBenchCount())
}

func TestLoad_Malformed(t *testing.T) {
	t.Cleanup(func() { Conf = Config{} })

	path := filepath.Join(t.TempDir(), "config.ini")
	require.NoError(t, os.WriteFile(path, []byte("[column\nmax_block_values = x\n"), 0644))
	assert.Error(t, Load(path))
}
