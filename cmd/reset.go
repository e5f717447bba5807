package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errNotConfirmed = errors.New("refusing to reset progress without --yes")

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase your known/unknown progress",
	Long:  "Erase every known/unknown mark for the current identity. This cannot be undone.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errNotConfirmed
		}

		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		id, _ := e.identify(ctx)
		if err := e.sync.Reset(ctx); err != nil {
			return err
		}

		snap := e.sync.Snapshot()
		fmt.Printf("Progress reset for %s: %d known, %d to learn.\n",
			id.DisplayName(), snap.TotalKnown, snap.TotalUnknown)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
