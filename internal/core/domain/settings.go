package domain

import "time"

// ResponseShape selects how the document list response is decoded.
type ResponseShape string

// Accepted document list shapes.
const (
	// ShapeAuto accepts either an {"documents": [...]} envelope or a bare array.
	ShapeAuto ResponseShape = "auto"

	// ShapeEnvelope requires the {"documents": [...]} envelope.
	ShapeEnvelope ResponseShape = "envelope"

	// ShapeArray requires a bare JSON array.
	ShapeArray ResponseShape = "array"
)

// IsValid returns true if the shape is recognised.
func (s ResponseShape) IsValid() bool {
	switch s {
	case ShapeAuto, ShapeEnvelope, ShapeArray:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s ResponseShape) String() string {
	return string(s)
}

// EmptyInputPolicy decides what happens when a blank input is submitted.
type EmptyInputPolicy string

// Empty input policies.
const (
	// EmptyInputWarn raises a warning notification.
	EmptyInputWarn EmptyInputPolicy = "warn"

	// EmptyInputIgnore does nothing.
	EmptyInputIgnore EmptyInputPolicy = "ignore"
)

// IsValid returns true if the policy is recognised.
func (p EmptyInputPolicy) IsValid() bool {
	return p == EmptyInputWarn || p == EmptyInputIgnore
}

// String returns the string representation.
func (p EmptyInputPolicy) String() string {
	return string(p)
}

// ServerSettings configures how the client reaches the document server.
type ServerSettings struct {
	// URL is the server base URL; API paths are appended to it.
	URL string `validate:"required,url"`

	// Timeout bounds each request. Zero leaves requests unbounded.
	Timeout time.Duration `validate:"gte=0"`

	// Token is an optional bearer token sent with every request.
	Token string

	// RateLimit caps requests per second. Zero disables throttling.
	RateLimit float64 `validate:"gte=0"`
}

// APISettings configures response decoding.
type APISettings struct {
	// DocumentsShape is the accepted shape of the document list response.
	DocumentsShape ResponseShape `validate:"oneof=auto envelope array"`
}

// InputSettings configures validation of one input flow.
type InputSettings struct {
	// EmptyInput is applied when the trimmed input is blank.
	EmptyInput EmptyInputPolicy `validate:"oneof=warn ignore"`
}

// NotificationSettings configures notification banners.
type NotificationSettings struct {
	// Timeout is how long a banner stays visible.
	Timeout time.Duration `validate:"gt=0"`
}

// Settings is the complete client configuration.
type Settings struct {
	Server        ServerSettings
	API           APISettings
	Search        InputSettings
	Chat          InputSettings
	Notifications NotificationSettings
}

// Default setting values.
const (
	DefaultServerURL           = "http://localhost:8000"
	DefaultNotificationTimeout = 5 * time.Second
)

// DefaultSettings returns the settings used when nothing is configured.
// Search warns on an empty query while chat ignores an empty message,
// matching the behaviour users of the web client are used to.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			URL: DefaultServerURL,
		},
		API: APISettings{
			DocumentsShape: ShapeAuto,
		},
		Search: InputSettings{
			EmptyInput: EmptyInputWarn,
		},
		Chat: InputSettings{
			EmptyInput: EmptyInputIgnore,
		},
		Notifications: NotificationSettings{
			Timeout: DefaultNotificationTimeout,
		},
	}
}

// SettingEntry is one setting rendered for display. Secret values are masked.
type SettingEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
