package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/templui/screentime/internal/app"
	"github.com/templui/screentime/internal/model"
	"github.com/templui/screentime/internal/usage"
)

func TodayCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show usage for today (or --date) by category and app",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				day, err := a.StatsService.ParseDay(date)
				if err != nil {
					return err
				}
				d := day.Format(model.DateLayout)
				entries := a.EntryService.List(d)

				total := 0
				for _, e := range entries {
					total += e.Duration
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s  %s", d, usage.FormatMinutes(total))))
				if len(entries) == 0 {
					fmt.Fprintln(out, mutedStyle.Render("no entries"))
					return nil
				}

				t := newTable("Category", "Time", "Share")
				for _, s := range a.StatsService.Breakdown(d, usage.GroupByCategory) {
					t.Row(usage.Label(s.Key), usage.FormatMinutes(s.Minutes), fmt.Sprintf("%.1f%%", s.Percent))
				}
				fmt.Fprintln(out, t.String())

				t = newTable("ID", "App", "Category", "Device", "Time")
				for _, e := range entries {
					t.Row(e.ID, e.App, usage.Label(e.Category), usage.Label(e.Device), usage.FormatMinutes(e.Duration))
				}
				fmt.Fprintln(out, t.String())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "day to show as YYYY-MM-DD (default today)")
	return cmd
}

func AddCmd() *cobra.Command {
	var entry model.TimeEntry

	cmd := &cobra.Command{
		Use:   "add <app> <minutes>",
		Short: "Log time spent in an app",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry.App = args[0]
			minutes, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("minutes must be a number: %q", args[1])
			}
			entry.Duration = minutes

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				if entry.Date == "" {
					entry.Date = a.StatsService.Today()
				}
				created, err := a.EntryService.Create(ctx, entry)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %s: %s %s on %s (%s)\n",
					created.ID, created.App, usage.FormatMinutes(created.Duration), created.Date, created.Category)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&entry.Date, "date", "", "YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&entry.Category, "category", "c", model.CategoryOther, "category")
	cmd.Flags().StringVarP(&entry.Device, "device", "d", model.DevicePhone, "device")
	cmd.Flags().StringVarP(&entry.Notes, "notes", "n", "", "notes (markdown)")
	return cmd
}

func RemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <entry-id>",
		Short: "Delete an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				deleted, err := a.EntryService.Delete(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted %s (%s, %s on %s)\n",
					deleted.ID, deleted.App, usage.FormatMinutes(deleted.Duration), deleted.Date)
				return nil
			})
		},
	}
}
