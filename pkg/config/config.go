package config

import (
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/evref/modest/pkg/api/modest"
	"github.com/sirupsen/logrus"
	"sigs.k8s.io/yaml"
)

// SearchPath is the config location relative to the XDG config directories.
const SearchPath = "modest/config.yaml"

func Default() *modest.Config {
	return &modest.Config{
		Workers:  0,
		LogLevel: logrus.InfoLevel.String(),
		Format:   modest.FormatLines,
	}
}

// Load reads the config file at path. Without a path the XDG config
// directories are searched, and if no file exists there the defaults apply.
func Load(path string) (*modest.Config, error) {
	if path == "" {
		found, err := xdg.SearchConfigFile(SearchPath)
		if err != nil {
			logrus.Debugf("No config file found, using defaults: %v", err)
			return Default(), nil
		}
		path = found
	}
	return LoadFile(path)
}

func LoadFile(path string) (*modest.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %v", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %v", path, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %v", path, err)
	}
	logrus.Debugf("Loaded config from %s.", path)
	return cfg, nil
}

func Validate(cfg *modest.Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must not be negative, but got %d", cfg.Workers)
	}
	switch cfg.Format {
	case modest.FormatLines, modest.FormatJSON, modest.FormatTable:
	default:
		return fmt.Errorf("unknown output format '%s'", cfg.Format)
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return err
	}
	return nil
}

// Init writes the default config to path. An existing file is never overwritten.
func Init(path string) error {
	_, err := os.Stat(path)
	if !os.IsNotExist(err) {
		return fmt.Errorf("config file %s already exists.", path)
	}
	data, err := yaml.Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0660)
}
