package driving

import "github.com/custodia-labs/ocrhl/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get returns the current settings, with defaults for unset keys.
	Get() (*domain.Settings, error)

	// Set validates and stores a single setting given in its string form.
	Set(key, value string) error

	// Value returns the effective value of a setting in string form.
	Value(key string) (string, error)

	// Keys returns the supported setting keys in display order.
	Keys() []string

	// Path returns the location of the configuration file.
	Path() string
}
