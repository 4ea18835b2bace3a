package cli

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/rnlabs/finbot/internal/channel"
	"github.com/rnlabs/finbot/internal/channel/ws"
	"github.com/rnlabs/finbot/internal/config"
	"github.com/rnlabs/finbot/internal/dialog"
	"github.com/rnlabs/finbot/internal/domain"
	"github.com/rnlabs/finbot/internal/identity"
	"github.com/rnlabs/finbot/internal/logging"
	"github.com/rnlabs/finbot/internal/render"
	"github.com/rnlabs/finbot/internal/routing"
	"github.com/rnlabs/finbot/internal/speech"
	"github.com/rnlabs/finbot/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		port int
		bind string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the interview gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(paths.Config)
			if err != nil {
				return err
			}

			if port != 0 {
				cfg.Gateway.Port = port
			}
			if bind != "" {
				cfg.Gateway.Bind = bind
			}

			issues := config.Validate(&cfg)
			if len(issues) > 0 {
				for _, issue := range issues {
					log.Error().Str("path", issue.Path).Msg(issue.Message)
				}
				return fmt.Errorf("config validation failed with %d issue(s)", len(issues))
			}

			// Rebuild the logger now that logging config is known.
			level, style := loggerSettings(cfg.Logging, logLevel)
			log = logging.New(nil, level, style)

			if err := paths.EnsureDirs(); err != nil {
				return fmt.Errorf("creating data directories: %w", err)
			}

			dbPath := cfg.Database.Path
			if dbPath == "" {
				dbPath = filepath.Join(paths.Data, "finbot.db")
			}
			db, err := store.Open(dbPath, log)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer db.Close()
			log.Info().Str("path", dbPath).Msg("database open")

			var sessions dialog.SessionStore
			if cfg.Session.Store == "memory" {
				sessions = dialog.NewMemorySessionStore()
				log.Info().Msg("using in-memory session store")
			} else {
				sessions = store.NewSQLiteSessionStore(db)
				log.Info().Msg("using SQLite session store")
			}

			answers := store.NewAnswerStore(db)
			directory := store.NewParticipantDirectory(db)
			resolver := identity.NewResolver(directory, directory, log)

			cardsDir := cfg.Interview.CardsDir
			if cardsDir == "" {
				cardsDir = paths.Cards
			}
			renderer := render.NewCardRenderer(cardsDir, log)
			if missing := renderer.Verify(); len(missing) > 0 {
				log.Warn().Strs("cards", missing).Msg("card files missing, fallbacks will be used")
			}

			orch := dialog.New(
				sessions,
				answers,
				renderer,
				speech.NewSynthesizer(cfg.Interview.Locale),
				resolver,
				dialog.Config{BlockOnWriteFailure: cfg.Persistence.BlockOnWriteFailure},
				log,
			)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			channels := channel.NewRegistry(log)
			gateway := ws.New(cfg.Gateway, log)
			channels.Register(gateway)

			router := routing.NewRouter(channels, orch, log)
			gateway.OnTurn(func(turn domain.InboundTurn) {
				router.HandleInbound(ctx, turn)
			})

			log.Info().
				Int("port", cfg.Gateway.Port).
				Str("bind", cfg.Gateway.Bind).
				Bool("auth", cfg.Gateway.Auth.Token != "").
				Msg("interview gateway starting")

			if err := gateway.Start(ctx); err != nil && ctx.Err() == nil {
				return err
			}
			channels.StopAll(context.Background())
			log.Info().Msg("gateway stopped")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "override gateway port")
	cmd.Flags().StringVar(&bind, "bind", "", "override bind host")

	return cmd
}
