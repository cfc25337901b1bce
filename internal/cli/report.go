package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	service "github.com/okian/traineval/internal/app"
)

func newReportCommand(rt *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the active participant's summary",
		Long: `Print the summary of the active participant, or of a shared report when
--token is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				rep service.Report
				err error
			)
			if cmd.Flags().Changed("token") {
				// A shared report is rendered from the token alone.
				token, _ := cmd.Flags().GetString("token")
				rep, err = service.New(service.WithLogger(rt.log)).DecodeReport(cmd.Context(), token)
			} else {
				rep, err = rt.liveReport(cmd)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), renderReport(cmd.OutOrStdout(), rep))
			return err
		},
	}
	cmd.Flags().String("token", "", "share token to render instead of the live report")
	return cmd
}

func (rt *appEnv) liveReport(cmd *cobra.Command) (service.Report, error) {
	svc, err := rt.openService(cmd.Context())
	if err != nil {
		return service.Report{}, err
	}
	defer svc.Stop()
	return svc.Report(cmd.Context())
}

func newDecodeCommand(rt *appEnv) *cobra.Command {
	return &cobra.Command{
		Use:   "decode <token>",
		Short: "Decode a share token and print the report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Decoding never touches stored state.
			svc := service.New(service.WithLogger(rt.log))
			rep, err := svc.DecodeReport(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		},
	}
}
