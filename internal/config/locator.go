package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// EnvConfigDir overrides the directory the configuration file is looked
// up in, bypassing the platform convention.
const EnvConfigDir = "BACMAN_CONFIG_DIR"

const (
	appDirName     = "bacman"
	configFileName = "config.toml"
)

// DefaultConfigPath returns the platform-appropriate location of the
// configuration file: $BACMAN_CONFIG_DIR/config.toml when the override is
// set, otherwise <xdg config home>/bacman/config.toml.
func DefaultConfigPath() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return filepath.Join(dir, configFileName), nil
	}
	if xdg.ConfigHome == "" {
		return "", &LocationError{Reason: "xdg config home is not set"}
	}
	return filepath.Join(xdg.ConfigHome, appDirName, configFileName), nil
}
