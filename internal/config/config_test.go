package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "size-color", cfg.Harness.Order)
	assert.Equal(t, 1, cfg.Harness.Workers)
	assert.True(t, cfg.Harness.Record)
	assert.Equal(t, 10, cfg.Report.TopN)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestLoad_Full(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
db = "runs/segment.db"
log_level = "debug"

[harness]
order = "color-size"
workers = 4
record = false

[report]
top_n = 0
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "runs", "segment.db"), cfg.DB, "relative db path resolves against the config dir")
	assert.Equal(t, log.DebugLevel, cfg.Level())
	assert.Equal(t, "color-size", cfg.Harness.Order)
	assert.Equal(t, 4, cfg.Harness.Workers)
	assert.False(t, cfg.Harness.Record)
	assert.Equal(t, 0, cfg.Report.TopN)
	assert.Equal(t, path, cfg.Path)
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[harness]\nworkers = 2\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Harness.Workers)
	assert.Equal(t, "size-color", cfg.Harness.Order)
	assert.True(t, cfg.Harness.Record)
	assert.Equal(t, 10, cfg.Report.TopN)
	assert.Equal(t, "", cfg.DB)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad order", "[harness]\norder = \"sideways\"\n", "harness.order"},
		{"zero workers", "[harness]\nworkers = 0\n", "harness.workers"},
		{"negative top_n", "[report]\ntop_n = -1\n", "report.top_n"},
		{"bad level", "log_level = \"loud\"\n", "log_level"},
		{"unknown key", "[harness]\nretries = 3\n", "unknown keys: harness.retries"},
		{"syntax", "db = \n", "reading config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, t.TempDir(), tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := Default()
	cfg.Harness.Workers = 0
	cfg.Report.TopN = -2
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "harness.workers")
	assert.Contains(t, err.Error(), "report.top_n")
}

// --- Discovery Tests ---

func TestDiscover_Explicit(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[report]\ntop_n = 3\n")
	cfg, err := Discover(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Report.TopN)
}

func TestDiscover_ExplicitMissing(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestDiscover_Env(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "[report]\ntop_n = 7\n")
	t.Setenv(EnvVar, path)
	cfg, err := Discover("")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Report.TopN)
}

func TestDiscover_WalksUp(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[harness]\nworkers = 5\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	t.Setenv(EnvVar, "")
	t.Chdir(nested)

	cfg, err := Discover("")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Harness.Workers)
	assert.Equal(t, filepath.Join(root, FileName), cfg.Path)
}

func TestDiscover_NoneFound(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Chdir(t.TempDir())
	cfg, err := Discover("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Path)
	assert.Equal(t, Default().Harness, cfg.Harness)
}
