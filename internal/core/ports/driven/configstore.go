package driven

import "github.com/tidewater-labs/lakeview-cli/internal/core/domain"

// ConfigStore persists application settings.
type ConfigStore interface {
	// Settings returns the current settings with defaults applied.
	Settings() domain.Settings

	// Set updates one setting by dot-notation key (for example
	// "connection.endpoint" or "defaults.chunk_size") and persists
	// immediately.
	Set(key, value string) error

	// Get returns the current value of one dot-notation key.
	Get(key string) (string, bool)

	// Keys lists the supported dot-notation keys, sorted.
	Keys() []string

	// Path returns the backing file path.
	Path() string
}
