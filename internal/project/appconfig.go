package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/CargoLoad/internal/model"
)

// DefaultConfigDir returns the default directory for application data.
// On all platforms this is ~/.cargoload/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".cargoload")
}

// ConfigPath returns the application config file inside a data directory.
func ConfigPath(dir string) string {
	return filepath.Join(dir, "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	var config model.AppConfig
	found, err := readJSON(path, &config)
	if err != nil {
		return model.AppConfig{}, err
	}
	if !found {
		return model.DefaultAppConfig(), nil
	}
	// Ensure RecentProjects is never nil
	if config.RecentProjects == nil {
		config.RecentProjects = []string{}
	}
	return config, nil
}

// readJSON decodes the JSON file at path into v. A missing file is not an
// error; found reports whether it existed.
func readJSON(path string, v interface{}) (found bool, err error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(data, v)
}

// writeJSON marshals v with indentation and writes it, creating parent
// directories as needed.
func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
