package driving

import "github.com/custodia-labs/docdesk/internal/core/domain"

// SettingsService manages client settings.
type SettingsService interface {
	// Get returns the stored settings layered over defaults.
	Get() (*domain.Settings, error)

	// Set validates and persists a single setting by dotted key.
	Set(key, value string) error

	// Keys lists the settable keys in display order.
	Keys() []string

	// Entries returns every key with its effective value, in display order.
	Entries() ([]domain.SettingEntry, error)

	// Path returns where settings are persisted.
	Path() string
}
