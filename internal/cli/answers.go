package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rnlabs/finbot/internal/store"
)

func newAnswersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answers",
		Short: "Inspect recorded interview answers",
	}

	cmd.AddCommand(newAnswersListCmd())
	return cmd
}

func newAnswersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <identifier>",
		Short: "List a candidate's answers in interview order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			answers, err := store.NewAnswerStore(db).ListByUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(answers) == 0 {
				fmt.Printf("no answers recorded for %s\n", args[0])
				return nil
			}
			for _, ans := range answers {
				fmt.Printf("%s  %-4s %-4s %q\n",
					ans.RecordedAt.Format(time.DateTime), ans.StepLabel, ans.Evaluation, ans.RawText)
			}
			return nil
		},
	}
}
