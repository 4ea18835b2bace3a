package config

import "fmt"

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s", e.Message)
}

// Defaults returns a Config with sensible defaults applied.
func Defaults() Config {
	return Config{
		Gateway: GatewayConfig{
			Port: 3978,
			Bind: "127.0.0.1",
		},
		Session: SessionConfig{
			Store: "sqlite",
		},
		Persistence: PersistenceConfig{
			BlockOnWriteFailure: true,
		},
		Interview: InterviewConfig{
			Locale: "en-US",
		},
		Logging: LoggingConfig{
			Level:        "info",
			ConsoleStyle: "pretty",
		},
	}
}
