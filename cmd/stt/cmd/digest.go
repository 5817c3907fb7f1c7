package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/screentime/internal/app"
)

func DigestCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Email today's summary to DIGEST_EMAIL",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if dryRun {
					subject, body := a.DigestService.Compose()
					fmt.Fprintf(cmd.OutOrStdout(), "Subject: %s\n\n%s\n", subject, body)
					return nil
				}

				err := a.DigestService.Send(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "digest sent to %s\n", a.Cfg.DigestEmail)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the digest instead of sending it")
	return cmd
}
