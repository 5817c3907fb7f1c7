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

func GoalsCmd() *cobra.Command {
	goals := &cobra.Command{
		Use:   "goals",
		Short: "List goals with today's progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				progress := a.StatsService.GoalProgress()
				out := cmd.OutOrStdout()
				if len(progress) == 0 {
					fmt.Fprintln(out, mutedStyle.Render("no goals"))
					return nil
				}

				t := newTable("ID", "Goal", "Used", "Limit", "Status")
				for _, p := range progress {
					status := okStyle.Render(usage.FormatMinutes(p.Remaining) + " left")
					if p.Exceeded {
						status = overStyle.Render(fmt.Sprintf("over by %s", usage.FormatMinutes(p.Used-p.Goal.Limit)))
					}
					t.Row(p.Goal.ID, usage.GoalLabel(p.Goal), usage.FormatMinutes(p.Used), usage.FormatMinutes(p.Goal.Limit), status)
				}
				fmt.Fprintln(out, t.String())
				return nil
			})
		},
	}

	goals.AddCommand(goalAddCmd())
	goals.AddCommand(goalRemoveCmd())
	return goals
}

func goalAddCmd() *cobra.Command {
	var goal model.Goal

	cmd := &cobra.Command{
		Use:   "add <total|category|app> [target] <limit-minutes>",
		Short: "Add a daily limit",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			goal.Type = args[0]
			if len(args) == 3 {
				goal.Target = args[1]
			}
			limit, err := strconv.Atoi(args[len(args)-1])
			if err != nil {
				return fmt.Errorf("limit must be a number: %q", args[len(args)-1])
			}
			goal.Limit = limit

			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				created, err := a.GoalService.Create(ctx, goal)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added goal %s: %s %s per day\n",
					created.ID, usage.GoalLabel(created), usage.FormatMinutes(created.Limit))
				return nil
			})
		},
	}
	return cmd
}

func goalRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <goal-id>",
		Short: "Delete a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				deleted, err := a.GoalService.Delete(ctx, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "deleted goal %s (%s)\n", deleted.ID, usage.GoalLabel(deleted))
				return nil
			})
		},
	}
}
