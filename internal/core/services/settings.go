package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/custodia-labs/docdesk/internal/core/domain"
	"github.com/custodia-labs/docdesk/internal/core/ports/driven"
	"github.com/custodia-labs/docdesk/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	KeyServerURL           = "server.url"
	KeyServerTimeout       = "server.timeout"
	KeyServerToken         = "server.token"
	KeyServerRateLimit     = "server.rate_limit"
	KeyDocumentsShape      = "api.documents_shape"
	KeySearchEmptyInput    = "search.empty_input"
	KeyChatEmptyInput      = "chat.empty_input"
	KeyNotificationTimeout = "notifications.timeout"
)

var settingKeys = []string{
	KeyServerURL,
	KeyServerTimeout,
	KeyServerToken,
	KeyServerRateLimit,
	KeyDocumentsShape,
	KeySearchEmptyInput,
	KeyChatEmptyInput,
	KeyNotificationTimeout,
}

// SettingsService manages client settings.
type SettingsService struct {
	configStore driven.ConfigStore
	validate    *validator.Validate
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		validate:    validator.New(),
	}
}

// Get retrieves current settings. Stored values that cannot be parsed
// are reported rather than silently replaced.
func (s *SettingsService) Get() (*domain.Settings, error) {
	defaults := domain.DefaultSettings()

	timeout, err := s.getDuration(KeyServerTimeout, defaults.Server.Timeout)
	if err != nil {
		return nil, err
	}
	notifyTimeout, err := s.getDuration(KeyNotificationTimeout, defaults.Notifications.Timeout)
	if err != nil {
		return nil, err
	}

	settings := &domain.Settings{
		Server: domain.ServerSettings{
			URL:       s.getString(KeyServerURL, defaults.Server.URL),
			Timeout:   timeout,
			Token:     s.configStore.GetString(KeyServerToken),
			RateLimit: s.getFloat(KeyServerRateLimit, defaults.Server.RateLimit),
		},
		API: domain.APISettings{
			DocumentsShape: domain.ResponseShape(s.getString(KeyDocumentsShape, defaults.API.DocumentsShape.String())),
		},
		Search: domain.InputSettings{
			EmptyInput: domain.EmptyInputPolicy(s.getString(KeySearchEmptyInput, defaults.Search.EmptyInput.String())),
		},
		Chat: domain.InputSettings{
			EmptyInput: domain.EmptyInputPolicy(s.getString(KeyChatEmptyInput, defaults.Chat.EmptyInput.String())),
		},
		Notifications: domain.NotificationSettings{
			Timeout: notifyTimeout,
		},
	}

	if err := s.Validate(settings); err != nil {
		return nil, fmt.Errorf("config %s: %w", s.configStore.Path(), err)
	}
	return settings, nil
}

// Validate checks settings against their field constraints.
func (s *SettingsService) Validate(settings *domain.Settings) error {
	if err := s.validate.Struct(settings); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("%w: %s fails %q (got %v)", domain.ErrInvalidInput, fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

// Set parses value for key, validates the resulting settings and
// persists the value.
func (s *SettingsService) Set(key, value string) error {
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	settings, err := s.Get()
	if err != nil {
		// Allow repairing a broken file one key at a time.
		defaults := domain.DefaultSettings()
		settings = &defaults
	}

	var stored any = value
	switch key {
	case KeyServerURL:
		settings.Server.URL = strings.TrimRight(value, "/")
		stored = settings.Server.URL
	case KeyServerTimeout:
		d, err := parseDuration(value)
		if err != nil {
			return err
		}
		settings.Server.Timeout = d
	case KeyServerToken:
		settings.Server.Token = value
	case KeyServerRateLimit:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number: %q", domain.ErrInvalidInput, key, value)
		}
		settings.Server.RateLimit = f
		stored = f
	case KeyDocumentsShape:
		settings.API.DocumentsShape = domain.ResponseShape(value)
	case KeySearchEmptyInput:
		settings.Search.EmptyInput = domain.EmptyInputPolicy(value)
	case KeyChatEmptyInput:
		settings.Chat.EmptyInput = domain.EmptyInputPolicy(value)
	case KeyNotificationTimeout:
		d, err := parseDuration(value)
		if err != nil {
			return err
		}
		settings.Notifications.Timeout = d
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := s.Validate(settings); err != nil {
		return err
	}

	if err := s.configStore.Set(key, stored); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// Keys lists the settable keys in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// Entries returns every setting with its effective value.
func (s *SettingsService) Entries() ([]domain.SettingEntry, error) {
	settings, err := s.Get()
	if err != nil {
		return nil, err
	}
	entries := make([]domain.SettingEntry, 0, len(settingKeys))
	for _, key := range settingKeys {
		value, _ := Lookup(settings, key)
		entries = append(entries, domain.SettingEntry{Key: key, Value: value})
	}
	return entries, nil
}

// Path returns the config file path.
func (s *SettingsService) Path() string {
	return s.configStore.Path()
}

// Lookup renders the effective value of key as a string.
func Lookup(settings *domain.Settings, key string) (string, bool) {
	switch key {
	case KeyServerURL:
		return settings.Server.URL, true
	case KeyServerTimeout:
		return settings.Server.Timeout.String(), true
	case KeyServerToken:
		if settings.Server.Token == "" {
			return "", true
		}
		return "********", true
	case KeyServerRateLimit:
		return strconv.FormatFloat(settings.Server.RateLimit, 'f', -1, 64), true
	case KeyDocumentsShape:
		return settings.API.DocumentsShape.String(), true
	case KeySearchEmptyInput:
		return settings.Search.EmptyInput.String(), true
	case KeyChatEmptyInput:
		return settings.Chat.EmptyInput.String(), true
	case KeyNotificationTimeout:
		return settings.Notifications.Timeout.String(), true
	default:
		return "", false
	}
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val, exists := s.configStore.Get(key)
	if !exists {
		return defaultVal, nil
	}
	switch v := val.(type) {
	case string:
		if v == "" {
			return defaultVal, nil
		}
		return parseDuration(v)
	case int64:
		return time.Duration(v) * time.Second, nil
	case int:
		return time.Duration(v) * time.Second, nil
	case float64:
		return time.Duration(v * float64(time.Second)), nil
	default:
		return 0, fmt.Errorf("%w: %s has unsupported type %T", domain.ErrInvalidInput, key, val)
	}
}

// parseDuration accepts Go durations ("30s", "1m") and bare seconds ("30").
func parseDuration(value string) (time.Duration, error) {
	if d, err := time.ParseDuration(value); err == nil {
		return d, nil
	}
	if secs, err := strconv.ParseFloat(value, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return 0, fmt.Errorf("%w: invalid duration %q", domain.ErrInvalidInput, value)
}
