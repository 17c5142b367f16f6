package driven

// ConfigStore provides persistent application configuration.
// Keys use dot notation, e.g. "content.dir" or "resolver.cache_size".
type ConfigStore interface {
	// Get retrieves a raw configuration value.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	GetInt(key string) int

	// GetBool retrieves a boolean configuration value.
	GetBool(key string) bool

	// Set stores a configuration value and persists it.
	Set(key string, value any) error

	// Save persists the current configuration.
	Save() error
}
