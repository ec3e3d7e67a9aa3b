package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json5")
	writeFile(t, path, `{name: "base", count: 3}`)

	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, testConfig{Name: "base", Count: 3}, cfg)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.json5"), `{name: "base", count: 3}`)
	writeFile(t, filepath.Join(dir, "app.local.json5"), `{name: "local"}`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "app.json5"))
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Name)
	require.Equal(t, 3, cfg.Count)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "nope.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.json5")
	writeFile(t, path, `{name: `)

	_, err := ReadConfig[testConfig](path)
	require.Error(t, err)
}
