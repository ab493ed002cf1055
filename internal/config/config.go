// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`

	// DevMode enables the static development tokens for auth.
	DevMode bool `koanf:"dev_mode"`

	// JWTSecret signs and verifies role tokens outside dev mode.
	JWTSecret string `koanf:"jwt_secret"`

	// DefaultRoom receives HTTP-sourced events that carry no room id.
	DefaultRoom string `koanf:"default_room"`

	// GeminiAPIKey enables the primary reasoning provider when set.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// GeminiModel selects the primary reasoning model.
	GeminiModel string `koanf:"gemini_model"`

	// GroqAPIKey enables the secondary reasoning provider and speech-to-text.
	GroqAPIKey string `koanf:"groq_api_key"`

	// GroqModel selects the secondary reasoning model.
	GroqModel string `koanf:"groq_model"`

	// STTModel selects the speech-to-text model.
	STTModel string `koanf:"stt_model"`

	// ReasoningTimeoutMS bounds a single reasoning-provider call.
	// Zero means no timeout: wait, then fall back on error or empty result.
	ReasoningTimeoutMS int `koanf:"reasoning_timeout_ms"`

	// SendBufferSize bounds each connection's outbound payload buffer.
	SendBufferSize int `koanf:"send_buffer_size"`
}

// New creates a Config populated with defaults.
func New() *Config {
	c := &Config{
		LogLevel:           "info",
		Addr:               ":8000",
		DevMode:            true,
		JWTSecret:          "super-secret-key-for-dev-only",
		DefaultRoom:        "classroom-1",
		GeminiModel:        "gemini-2.0-flash",
		GroqModel:          "llama-3.1-8b-instant",
		STTModel:           "whisper-large-v3",
		ReasoningTimeoutMS: 0,
		SendBufferSize:     32,
	}
	return c
}
