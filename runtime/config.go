package runtime

import "go.uber.org/zap"

// Config controls how a Runtime creates states.
type Config struct {
	// OpenLibs opens the Lua standard libraries in every new state.
	OpenLibs bool

	// Logger receives runtime lifecycle logs. Nil uses the package logger.
	Logger *zap.Logger
}

// DefaultConfig returns a configuration with the standard libraries opened.
func DefaultConfig() Config {
	return Config{OpenLibs: true}
}
