package shared

import (
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Library     LibraryConfig     `toml:"library"`
	Import      ImportConfig      `toml:"import"`
	FtSeparator FtSeparatorConfig `toml:"ftseparator"`
}

// LibraryConfig contains library database settings.
type LibraryConfig struct {
	Path      string   `toml:"path"`
	FeatWords []string `toml:"feat_words"`
}

// ImportConfig contains importer settings.
type ImportConfig struct {
	Write  bool     `toml:"write"`
	Ignore []string `toml:"ignore"`
}

// FtSeparatorConfig contains the options of the ftseparator plugin.
type FtSeparatorConfig struct {
	Auto               bool   `toml:"auto"`
	Separator          string `toml:"separator"`
	ConvertAlbumArtist bool   `toml:"convert_album_artist"`
	ConvertSortArtist  bool   `toml:"convert_sort_artist"`
}

// LoadConfig reads a TOML configuration file from the specified path and layers it over [DefaultConfig].
//
// Keys missing from the file keep their defaults. Unknown keys are rejected.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	md, err := toml.Decode(string(data), config)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("%w: unknown keys: %s", ErrInvalidConfig, strings.Join(keys, ", "))
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// Validate checks values that cannot be used as given.
//
// The ftseparator separator is joined verbatim and never checked.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Library.Path) == "" {
		return fmt.Errorf("%w: library.path is empty", ErrInvalidConfig)
	}

	for _, pattern := range c.Import.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("%w: bad import.ignore pattern %q", ErrInvalidConfig, pattern)
		}
	}

	for _, word := range c.Library.FeatWords {
		if strings.TrimSpace(word) == "" {
			return fmt.Errorf("%w: library.feat_words contains an empty word", ErrInvalidConfig)
		}
	}

	return nil
}

// WriteTOML encodes the configuration to w.
func (c *Config) WriteTOML(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
