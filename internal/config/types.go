package config

// Config is the root configuration for finbot.
type Config struct {
	Gateway     GatewayConfig     `yaml:"gateway,omitempty"`
	Database    DatabaseConfig    `yaml:"database,omitempty"`
	Session     SessionConfig     `yaml:"session,omitempty"`
	Persistence PersistenceConfig `yaml:"persistence,omitempty"`
	Interview   InterviewConfig   `yaml:"interview,omitempty"`
	Logging     LoggingConfig     `yaml:"logging,omitempty"`
}

// GatewayConfig controls the WebSocket gateway the rich client connects to.
type GatewayConfig struct {
	Port int         `yaml:"port,omitempty"`
	Bind string      `yaml:"bind,omitempty"` // bind host, e.g. "127.0.0.1" or "0.0.0.0"
	Auth GatewayAuth `yaml:"auth,omitempty"`
}

// GatewayAuth configures gateway authentication. An empty token disables
// authentication (local development).
type GatewayAuth struct {
	Token string `yaml:"token,omitempty"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `yaml:"path,omitempty"` // defaults to <data>/finbot.db
}

// SessionConfig selects the session store backend.
type SessionConfig struct {
	Store string `yaml:"store,omitempty"` // "sqlite" | "memory"
}

// PersistenceConfig controls how answer-write failures interact with the
// script. When BlockOnWriteFailure is true a failed answer write aborts the
// step instead of advancing past an unrecorded answer.
type PersistenceConfig struct {
	BlockOnWriteFailure bool `yaml:"blockOnWriteFailure"`
}

// InterviewConfig tunes the interview content.
type InterviewConfig struct {
	CardsDir string `yaml:"cardsDir,omitempty"` // directory of prompt card JSON files
	Locale   string `yaml:"locale,omitempty"`   // SSML locale for spoken lines
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level,omitempty"`        // "silent" | "fatal" | "error" | "warn" | "info" | "debug" | "trace"
	ConsoleStyle string `yaml:"consoleStyle,omitempty"` // "pretty" | "json"
}
