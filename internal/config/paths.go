package config

import (
	"os"
	"path/filepath"
)

const defaultBaseDir = ".finbot"

// Paths holds resolved filesystem paths for finbot data.
type Paths struct {
	Base   string // ~/.finbot
	Config string // ~/.finbot/config.yaml
	Data   string // ~/.finbot/data
	Cards  string // ~/.finbot/cards
	Logs   string // ~/.finbot/logs
}

// ResolvePaths computes all standard paths from the home directory.
// If FINBOT_HOME is set, it overrides the default base directory.
func ResolvePaths() (Paths, error) {
	base := os.Getenv("FINBOT_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, err
		}
		base = filepath.Join(home, defaultBaseDir)
	}

	return Paths{
		Base:   base,
		Config: filepath.Join(base, "config.yaml"),
		Data:   filepath.Join(base, "data"),
		Cards:  filepath.Join(base, "cards"),
		Logs:   filepath.Join(base, "logs"),
	}, nil
}

// EnsureDirs creates all standard directories if they don't exist.
func (p Paths) EnsureDirs() error {
	for _, d := range []string{p.Base, p.Data, p.Cards, p.Logs} {
		if err := os.MkdirAll(d, 0o700); err != nil {
			return err
		}
	}
	return nil
}
