package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/templui/screentime/internal/app"
	"github.com/templui/screentime/internal/service"
)

func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Write all entries and goals as JSON (stdout when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				var out io.Writer = cmd.OutOrStdout()
				if len(args) == 1 {
					f, err := os.Create(args[0])
					if err != nil {
						return fmt.Errorf("failed to create export file: %w", err)
					}
					defer f.Close()
					out = f
				}

				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(a.SnapshotService.Export())
			})
		},
	}
}

func ImportCmd() *cobra.Command {
	var merge bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Load entries and goals from an export (replaces current data unless --merge)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open import file: %w", err)
			}
			defer f.Close()

			snap, err := service.Decode(f)
			if err != nil {
				return err
			}

			mode := service.ImportReplace
			if merge {
				mode = service.ImportMerge
			}

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				imported, err := a.SnapshotService.Import(ctx, snap, mode)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "imported (%s): %d entries, %d goals\n", mode, len(imported.Entries), len(imported.Goals))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "keep existing data and add unknown records")
	return cmd
}

func BackupCmd() *cobra.Command {
	backup := &cobra.Command{
		Use:   "backup",
		Short: "Upload a snapshot to backup storage (S3 or BACKUP_DIR)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				b, err := a.SnapshotService.Backup(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", b.Path)
				if b.URL != "" {
					fmt.Fprintln(cmd.OutOrStdout(), mutedStyle.Render(b.URL))
				}
				return nil
			})
		},
	}

	backup.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				paths, err := a.SnapshotService.Backups(ctx)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", p, mutedStyle.Render(backupAge(p)))
				}
				return nil
			})
		},
	})

	backup.AddCommand(&cobra.Command{
		Use:   "restore <path>",
		Short: "Replace current data with a saved backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				snap, err := a.SnapshotService.RestoreBackup(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "restored %d entries, %d goals\n", len(snap.Entries), len(snap.Goals))
				return nil
			})
		},
	})

	backup.AddCommand(&cobra.Command{
		Use:   "rm <path>",
		Short: "Delete a saved backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				p, err := a.SnapshotService.DeleteBackup(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", p)
				return nil
			})
		},
	})

	return backup
}

// backupAge turns "backups/20261017T203000.000Z-1a2b3c4d.json" into "3 hours ago".
func backupAge(p string) string {
	t, err := service.BackupTime(path.Base(p))
	if err != nil {
		return ""
	}
	return humanize.Time(t)
}
