package shared

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read on startup.
const (
	EnvConfigPath  = "FTSEP_CONFIG"
	EnvLibraryPath = "FTSEP_LIBRARY"
)

// LoadEnv loads variables from the given dotenv files (".env" when none are given).
//
// Missing files are ignored. Variables already present in the environment win.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}
	return nil
}

// ConfigPath returns the config file path from [EnvConfigPath], or fallback when unset.
func ConfigPath(fallback string) string {
	if path := strings.TrimSpace(os.Getenv(EnvConfigPath)); path != "" {
		return path
	}
	return fallback
}

// ApplyEnv overrides configuration values with environment variables.
func (c *Config) ApplyEnv() {
	if path := strings.TrimSpace(os.Getenv(EnvLibraryPath)); path != "" {
		c.Library.Path = path
	}
}
