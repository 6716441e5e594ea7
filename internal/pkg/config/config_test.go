package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	t.Setenv(envConfigPath, "")

	v := viper.New()
	require.NoError(t, load(v, ""))

	assert.Equal(t, ":8080", v.GetString(constants.ViperHTTPAddr))
	assert.Equal(t, "client", v.GetString(constants.ViperDashboardSource))
	assert.Equal(t, 2030, v.GetInt(constants.ViperDashboardDefaultYear))
	assert.Equal(t, 5*time.Minute, v.GetDuration(constants.ViperCacheTTL))
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	v := viper.New()
	err := load(v, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  driver: memory
  fixture_path: ./fixture.json
dashboard:
  source: view
metrics:
  aliases:
    capital: [capital_required, capex]
`), 0o644))

	t.Setenv("ECONDASH_DASHBOARD_SOURCE", "client")

	v := viper.New()
	require.NoError(t, load(v, path))

	assert.Equal(t, constants.StoreDriverMemory, v.GetString(constants.ViperStoreDriver))
	assert.Equal(t, "./fixture.json", v.GetString(constants.ViperStoreFixturePath))
	assert.Equal(t, "client", v.GetString(constants.ViperDashboardSource))

	aliases := StringMapSlice(v, constants.ViperMetricsAliases)
	assert.Equal(t, map[string][]string{"capital": {"capital_required", "capex"}}, aliases)
}
