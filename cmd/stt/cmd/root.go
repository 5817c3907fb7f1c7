package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/screentime/internal/app"
	"github.com/templui/screentime/internal/config"
	"github.com/templui/screentime/internal/logger"
)

func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "stt",
		Short:         "Track daily screen time from the command line",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(MigrateCmd())
	root.AddCommand(TodayCmd())
	root.AddCommand(AddCmd())
	root.AddCommand(RemoveCmd())
	root.AddCommand(GoalsCmd())
	root.AddCommand(ExportCmd())
	root.AddCommand(ImportCmd())
	root.AddCommand(BackupCmd())
	root.AddCommand(DigestCmd())

	return root
}

// loadConfig reads the environment and routes logs to stderr so command
// output stays pipeable.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.Load()
	logger.Init(logger.Options{
		Development: cfg.IsDevelopment(),
		SentryDSN:   cfg.SentryDSN,
		Environment: cfg.AppEnv,
		AppName:     cfg.AppName,
		Output:      cmd.ErrOrStderr(),
	})
	return cfg
}

// withApp builds the app for one command and closes it afterwards.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *app.App) error) error {
	cfg := loadConfig(cmd)
	defer logger.Flush()

	ctx := commandContext(cmd)
	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize app: %w", err)
	}
	defer a.Close()

	return fn(ctx, a)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
