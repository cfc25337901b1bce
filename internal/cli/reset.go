package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var errResetNotConfirmed = errors.New("reset wipes every participant and evaluation; pass --yes to confirm")

func newResetCommand(rt *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all data and restore the default training",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if yes, _ := cmd.Flags().GetBool("yes"); !yes {
				return errResetNotConfirmed
			}
			svc, err := rt.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			if err := svc.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "all data cleared")
			return nil
		},
	}
	cmd.Flags().Bool("yes", false, "confirm the reset")
	return cmd
}
