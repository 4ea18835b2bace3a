// Package cli implements the finbot command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/rnlabs/finbot/internal/config"
	"github.com/rnlabs/finbot/internal/logging"
)

var (
	cfgFile  string
	logLevel string

	// loaded at init time
	paths config.Paths
	log   *logging.Logger
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "finbot",
		Short: "Finbot — automated screening-interview bot",
		Long:  "Finbot runs scripted screening interviews over a WebSocket gateway: login, two HR questions, two technical questions, scored and recorded as the candidate answers.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			paths, err = config.ResolvePaths()
			if err != nil {
				return err
			}
			if cfgFile != "" {
				paths.Config = cfgFile
			}
			level := logLevel
			if level == "" {
				level = "info"
			}
			log = logging.New(nil, level, "pretty")
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.finbot/config.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, fatal, silent)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newParticipantCmd())
	cmd.AddCommand(newAnswersCmd())

	return cmd
}

// loggerSettings resolves the effective log level and console style: the
// --log-level flag wins over the config file, which wins over defaults.
func loggerSettings(cfg config.LoggingConfig, flagLevel string) (level, style string) {
	level = cfg.Level
	if flagLevel != "" {
		level = flagLevel
	}
	if level == "" {
		level = "info"
	}
	style = cfg.ConsoleStyle
	if style == "" {
		style = "pretty"
	}
	return level, style
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
