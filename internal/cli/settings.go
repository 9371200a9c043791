package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// settings holds rho's optional tool-level configuration. It is distinct
// from the per-invocation document configuration: settings tune the tool
// itself, never the rendered output.
type settings struct {
	// Verbose enables debug-level logging.
	Verbose bool `toml:"verbose"`

	// DefaultsDir overrides the directory searched for default documents
	// (style.json, mathjax_config.json, mathjax_typeset.json). Empty means
	// the directory of the running executable.
	DefaultsDir string `toml:"defaults_dir"`
}

// settingsPath returns the settings file location using the XDG standard
// (~/.config/rho/config.toml).
func settingsPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// loadSettings reads the settings file. A missing file yields the zero
// settings; a malformed file is diagnosed and also yields the zero settings,
// so a broken config can never block an invocation.
func loadSettings() settings {
	path, err := settingsPath()
	if err != nil {
		return settings{}
	}
	return loadSettingsFile(path)
}

func loadSettingsFile(path string) settings {
	var s settings
	if _, err := os.Stat(path); err != nil {
		return settings{}
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		log.Default().Warnf("cannot parse %s: %v", path, err)
		return settings{}
	}
	return s
}
