// Package file loads GuideVault configuration from a TOML file in the
// config directory, with sensible defaults for anything unset.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// DefaultArchiveURL is where the guide archive is fetched from when the
// config file does not override it.
const DefaultArchiveURL = "https://archive.org/download/gamefaqs_archive/gamefaqs_archive.tar.gz"

// Config holds the settings the pipeline and stores read at startup.
type Config struct {
	// ArchiveURL is the guide archive download location.
	ArchiveURL string `toml:"archive_url"`

	// DataDir holds the SQLite database. Empty selects
	// ~/.guidevault/data.
	DataDir string `toml:"data_dir"`

	// WorkDir holds the downloaded archive and extracted tree during
	// bootstrap. Empty selects ~/.guidevault/work.
	WorkDir string `toml:"work_dir"`

	// ImportBatchSize is how many guides are committed per transaction.
	// Zero selects the importer default.
	ImportBatchSize int `toml:"import_batch_size"`
}

// Load reads config.toml from configDir, creating the directory and
// falling back to defaults when the file does not exist. If configDir is
// empty, defaults to ~/.guidevault.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		configDir = filepath.Join(home, ".guidevault")
	}

	// Ensure directory exists
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	cfg := &Config{}
	path := filepath.Join(configDir, "config.toml")
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	cfg.applyDefaults(configDir)
	return cfg, nil
}

// Save writes the config back to configDir/config.toml.
func (c *Config) Save(configDir string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func (c *Config) applyDefaults(configDir string) {
	if c.ArchiveURL == "" {
		c.ArchiveURL = DefaultArchiveURL
	}
	if c.DataDir == "" {
		c.DataDir = filepath.Join(configDir, "data")
	}
	if c.WorkDir == "" {
		c.WorkDir = filepath.Join(configDir, "work")
	}
}
