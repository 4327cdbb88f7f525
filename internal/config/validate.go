package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

var validLogFormats = map[string]struct{}{
	"console": {},
	"json":    {},
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks the configuration for values that would break at runtime.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.DownloadDir) == "" {
		return fmt.Errorf("paths.download_dir must not be empty")
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return fmt.Errorf("paths.log_dir must not be empty")
	}

	for name, dir := range map[string]string{
		"library.videos_dir": c.Library.VideosDir,
		"library.audio_dir":  c.Library.AudioDir,
	} {
		if strings.TrimSpace(dir) == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
		if filepath.IsAbs(dir) {
			return fmt.Errorf("%s must be relative to the library dir, got %q", name, dir)
		}
	}

	if _, ok := validLogFormats[c.Logging.Format]; !ok {
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if _, ok := validLogLevels[c.Logging.Level]; !ok {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}

	return nil
}
