package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/LoadTwin/internal/model"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to config keys when reading overrides from the
// environment, e.g. LOADTWIN_SERVICE_URL.
const EnvPrefix = "LOADTWIN"

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.loadtwin/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".loadtwin")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

func newConfigReader() *viper.Viper {
	v := viper.New()
	def := model.DefaultAppConfig()
	v.SetDefault("service_url", def.ServiceURL)
	v.SetDefault("request_timeout", def.RequestTimeout)
	v.SetDefault("placement_mode", string(def.PlacementMode))
	v.SetDefault("items_per_page", def.ItemsPerPage)
	v.SetDefault("animation_stagger_ms", def.AnimationStagger)
	v.SetDefault("mesh_gap", def.MeshGap)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("export_dir", def.ExportDir)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("recent_manifests", def.RecentManifests)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadAppConfig reads an AppConfig from the given path. Values missing from
// the file keep their defaults and LOADTWIN_* environment variables take
// precedence over both. If the file does not exist, defaults are returned
// with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	v := newConfigReader()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return model.AppConfig{}, fmt.Errorf("error reading config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return model.AppConfig{}, err
	}

	var config model.AppConfig
	if err := v.Unmarshal(&config); err != nil {
		return model.AppConfig{}, fmt.Errorf("error decoding config: %w", err)
	}
	if _, err := model.ParsePlacementMode(string(config.PlacementMode)); err != nil {
		return model.AppConfig{}, err
	}
	if config.PlacementMode == "" {
		config.PlacementMode = model.PlacementShelf
	}
	if config.ItemsPerPage <= 0 {
		config.ItemsPerPage = model.DefaultAppConfig().ItemsPerPage
	}
	// Ensure RecentManifests is never nil
	if config.RecentManifests == nil {
		config.RecentManifests = []string{}
	}
	return config, nil
}
