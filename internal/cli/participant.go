package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rnlabs/finbot/internal/config"
	"github.com/rnlabs/finbot/internal/domain"
	"github.com/rnlabs/finbot/internal/store"
)

// openDB opens the database configured for the current invocation.
func openDB() (*store.DB, error) {
	cfg, err := config.Load(paths.Config)
	if err != nil {
		return nil, err
	}
	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath = filepath.Join(paths.Data, "finbot.db")
	}
	if err := paths.EnsureDirs(); err != nil {
		return nil, err
	}
	return store.Open(dbPath, log)
}

func newParticipantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participant",
		Short: "Manage registered interview candidates",
	}

	cmd.AddCommand(newParticipantAddCmd())
	cmd.AddCommand(newParticipantListCmd())

	return cmd
}

func newParticipantAddCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "add <identifier> <token>",
		Short: "Register a candidate with login credentials",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := domain.Category(category)
			switch cat {
			case domain.CategoryAWS, domain.CategoryAzure, domain.CategoryGeneral:
			default:
				return fmt.Errorf("unknown category %q (want aws, azure or general)", category)
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			directory := store.NewParticipantDirectory(db)
			if err := directory.Add(cmd.Context(), store.Participant{
				Identifier: args[0],
				Token:      args[1],
				Category:   cat,
			}); err != nil {
				return err
			}
			fmt.Printf("Registered %s (%s)\n", args[0], cat)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "general", "question track (aws, azure, general)")
	return cmd
}

func newParticipantListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered candidates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			directory := store.NewParticipantDirectory(db)
			participants, err := directory.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(participants) == 0 {
				fmt.Println("no participants registered")
				return nil
			}
			for _, p := range participants {
				attended := " "
				if p.Attended {
					attended = "x"
				}
				fmt.Printf("[%s] %-15s %s\n", attended, p.Identifier, p.Category)
			}
			return nil
		},
	}
}
