package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rnlabs/finbot/internal/config"
)

func TestLoggerSettings(t *testing.T) {
	tests := []struct {
		name      string
		cfg       config.LoggingConfig
		flagLevel string
		wantLevel string
		wantStyle string
	}{
		{
			name:      "defaults when nothing set",
			wantLevel: "info",
			wantStyle: "pretty",
		},
		{
			name:      "config file applies",
			cfg:       config.LoggingConfig{Level: "debug", ConsoleStyle: "json"},
			wantLevel: "debug",
			wantStyle: "json",
		},
		{
			name:      "flag overrides config level",
			cfg:       config.LoggingConfig{Level: "debug", ConsoleStyle: "json"},
			flagLevel: "error",
			wantLevel: "error",
			wantStyle: "json",
		},
		{
			name:      "flag with empty config",
			flagLevel: "trace",
			wantLevel: "trace",
			wantStyle: "pretty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, style := loggerSettings(tt.cfg, tt.flagLevel)
			assert.Equal(t, tt.wantLevel, level)
			assert.Equal(t, tt.wantStyle, style)
		})
	}
}
