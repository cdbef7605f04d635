package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/matzehuels/isosort/pkg/errors"
)

// EnvConfigDir overrides the directory config.toml is read from.
const EnvConfigDir = "ISOSORT_CONFIG_DIR"

// FilePath returns where config.toml is expected. The file need not exist.
func FilePath() string {
	var configDirs []string

	// useful during development or other non-standard setups.
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		if s, err := os.Stat(dir); err == nil && s.IsDir() {
			return filepath.Join(dir, "config.toml")
		}
	}

	// os.UserConfigDir() already does this for linux leaving darwin to handle
	if runtime.GOOS == "darwin" {
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			configDirs = append(configDirs, xdg)
		}
		configDirs = append(configDirs, path.Join(os.Getenv("HOME"), ".config"))
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		configDirs = append(configDirs, configDir)
	}

	for _, dir := range configDirs {
		p := filepath.Join(dir, "isosort", "config.toml")
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if len(configDirs) > 0 {
		return filepath.Join(configDirs[0], "isosort", "config.toml")
	}
	return ""
}

// Load returns the defaults overlaid with the user's config.toml, if any.
func Load() (*Config, error) {
	p := FilePath()
	if p == "" {
		return Default(), nil
	}
	return LoadFile(p)
}

// LoadFile returns the defaults overlaid with the file at p. A missing file
// yields the defaults.
func LoadFile(p string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(p)
	if stderrors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read config %s", p)
	}
	if err := c.Load(string(data)); err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "config %s", p)
	}
	return c, nil
}
