package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgilks/comprehendo-sub000/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner progress and feedback",
	Long:  "Reset deletes this learner's progress and feedback records. Cached exercises are kept since other learners can still use them.",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Println("This deletes your progress and feedback. Re-run with --yes to confirm.")
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		learnerID, err := store.EnsureLearnerID(dbPath)
		if err != nil {
			return fmt.Errorf("resolve learner id: %w", err)
		}

		if err := st.Progress().Reset(cmd.Context(), learnerID); err != nil {
			return err
		}

		fmt.Println("Learner data cleared. You start fresh at A1.")
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
