package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/piwi3910/CargoLoad/internal/api"
	"github.com/piwi3910/CargoLoad/internal/model"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateHome points the home directory at a temp dir so no user config or
// data leaks into a test.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	return home
}

func TestLoadConfigDefaults(t *testing.T) {
	home := isolateHome(t)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "count", cfg.Plan.Metric)
	assert.Equal(t, model.DefaultRoundCap, cfg.Plan.RoundCap)
	assert.Empty(t, cfg.Plan.Containers)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, api.DefaultMaxUnits, cfg.Server.MaxUnits)
	assert.Equal(t, filepath.Join(home, ".cargoload"), cfg.Data.Dir)
	assert.Equal(t, filepath.Join(home, ".cargoload", "containers.yaml"), cfg.Plan.Catalog)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Address())
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "cargoload.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
  format: json
plan:
  metric: volume
  round_cap: 12
  containers: [20_dv_iso, 40_hc_iso]
server:
  port: 9090
  shutdown_timeout: 3s
  max_units: 250
`), 0644))

	t.Setenv("CARGOLOAD_SERVER_PORT", "7070")

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "volume", cfg.Plan.Metric)
	assert.Equal(t, 12, cfg.Plan.RoundCap)
	assert.Equal(t, []string{"20_dv_iso", "40_hc_iso"}, cfg.Plan.Containers)
	assert.Equal(t, 7070, cfg.Server.Port, "environment overrides the file")
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 250, cfg.Server.MaxUnits)
}

func TestLoadConfigFlagsOverride(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "cargoload.yaml")
	require.NoError(t, os.WriteFile(path, []byte("plan:\n  metric: volume\n  round_cap: 7\n"), 0644))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("metric", "count", "")
	fs.Int("round-cap", 0, "")
	fs.StringSlice("containers", nil, "")
	require.NoError(t, fs.Parse([]string{"--metric", "count", "--containers", "40_dv_iso,45_hc"}))

	cfg, err := LoadConfig(path, fs)
	require.NoError(t, err)

	assert.Equal(t, "count", cfg.Plan.Metric, "a set flag wins")
	assert.Equal(t, 7, cfg.Plan.RoundCap, "an unset flag does not mask the file")
	assert.Equal(t, []string{"40_dv_iso", "45_hc"}, cfg.Plan.Containers)
}

func TestLoadConfigErrors(t *testing.T) {
	isolateHome(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("plan: [unclosed"), 0644))
	_, err = LoadConfig(bad, nil)
	assert.Error(t, err)
}

func TestPlanSettings(t *testing.T) {
	cfg := &Config{Plan: PlanConfig{Metric: "Volume", RoundCap: 0}}
	settings, err := cfg.PlanSettings()
	require.NoError(t, err)
	assert.Equal(t, model.MetricVolume, settings.Metric)
	assert.Equal(t, model.DefaultRoundCap, settings.RoundCap)

	cfg.Plan.Metric = "weight"
	_, err = cfg.PlanSettings()
	assert.Error(t, err)

	cfg.Plan.Metric = "count"
	cfg.Plan.RoundCap = -1
	_, err = cfg.PlanSettings()
	assert.Error(t, err)
}

func TestExportPath(t *testing.T) {
	cfg := &Config{Export: ExportConfig{Dir: "out"}}
	assert.Equal(t, filepath.Join("out", "plan.pdf"), cfg.ExportPath("plan.pdf"))

	abs := filepath.Join(t.TempDir(), "plan.pdf")
	assert.Equal(t, abs, cfg.ExportPath(abs))
	assert.Equal(t, "", cfg.ExportPath(""))
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := SetupLogger(LogConfig{Level: "debug", Format: "json"}, &buf)
	logger.Debug("packing", "units", 3)
	assert.True(t, strings.HasPrefix(buf.String(), "{"), buf.String())
	assert.Contains(t, buf.String(), `"units":3`)

	buf.Reset()
	logger = SetupLogger(LogConfig{Level: "warning"}, &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")

	buf.Reset()
	logger = SetupLogger(LogConfig{Level: "bogus"}, &buf)
	logger.Debug("hidden")
	logger.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
