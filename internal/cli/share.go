package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/traineval/internal/adapters/share"
	"github.com/okian/traineval/pkg/logger"
)

func newShareCommand(rt *appEnv) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Print a share link for the active participant's report",
		Long: `Print a self-contained link to the active participant's report. A QR code
is drawn when stdout is a terminal or --qr is set; --png writes it to a file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			forceQR, _ := cmd.Flags().GetBool("qr")
			pngPath, _ := cmd.Flags().GetString("png")
			size, _ := cmd.Flags().GetInt("size")

			svc, err := rt.openService(cmd.Context())
			if err != nil {
				return err
			}
			defer svc.Stop()

			info, err := svc.Share(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, info.Link)
			fmt.Fprintf(out, "file: %s\n", info.FileName)

			if forceQR || isTerminal(out) {
				art, err := share.QRText(info.Link)
				if err != nil {
					return err
				}
				fmt.Fprint(out, art)
			}

			if pngPath != "" {
				png, err := share.QRCode(info.Link, size)
				if err != nil {
					return err
				}
				if err := os.WriteFile(pngPath, png, 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", pngPath, err)
				}
				rt.log.Info(cmd.Context(), "qr code written", logger.String("path", pngPath))
			}
			return nil
		},
	}
	cmd.Flags().Bool("qr", false, "always draw the QR code")
	cmd.Flags().String("png", "", "write the QR code as PNG to this path")
	cmd.Flags().Int("size", share.DefaultQRSize, "PNG edge length in pixels")
	return cmd
}
