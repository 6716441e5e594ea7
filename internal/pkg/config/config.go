package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ougirez/econdash/internal/pkg/constants"
	"github.com/spf13/viper"
)

const (
	envPrefix      = "ECONDASH"
	envConfigPath  = "ECONDASH_CONFIG"
	defaultCfgPath = "./configs/config.yaml"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(constants.ViperHTTPAddr, ":8080")
	v.SetDefault(constants.ViperHTTPCORSOrigins, []string{"http://localhost:3000"})
	v.SetDefault(constants.ViperLogLevel, "info")
	v.SetDefault(constants.ViperLogEncoding, "json")
	v.SetDefault(constants.ViperStoreDriver, constants.StoreDriverPostgres)
	v.SetDefault(constants.ViperStoreDSN, "")
	v.SetDefault(constants.ViperStoreFixturePath, "")
	v.SetDefault(constants.ViperStoreConnectRetries, 5)
	v.SetDefault(constants.ViperDashboardSource, "client")
	v.SetDefault(constants.ViperDashboardDefaultYear, constants.DefaultYear)
	v.SetDefault(constants.ViperCacheRedisAddr, "")
	v.SetDefault(constants.ViperCacheTTL, 5*time.Minute)
}

// Init configures the global viper instance: defaults, the optional config
// file and ECONDASH_* environment overrides.
func Init(path string) error {
	return load(viper.GetViper(), path)
}

func load(v *viper.Viper, path string) error {
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := path != ""
	if !explicit {
		path = os.Getenv(envConfigPath)
		explicit = path != ""
	}
	if path == "" {
		path = defaultCfgPath
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !explicit && (errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}

	return nil
}

// StringMapSlice reads a map of string slices, e.g. metric alias overrides.
func StringMapSlice(v *viper.Viper, key string) map[string][]string {
	raw := v.GetStringMap(key)
	if len(raw) == 0 {
		return nil
	}

	out := make(map[string][]string, len(raw))
	for k := range raw {
		out[k] = v.GetStringSlice(key + "." + k)
	}
	return out
}
