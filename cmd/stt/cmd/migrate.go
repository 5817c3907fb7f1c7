package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/screentime/internal/config"
	"github.com/templui/screentime/internal/db"
)

func MigrateCmd() *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the SQL schema (STORE_BACKEND=sql only)",
	}

	migrate.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, "up")
		},
	})
	migrate.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the latest migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, "down")
		},
	})
	migrate.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, "status")
		},
	})

	return migrate
}

func runMigrate(cmd *cobra.Command, direction string) error {
	cfg := loadConfig(cmd)
	if cfg.StoreBackend == config.StoreBackendFile {
		return fmt.Errorf("migrations only apply to the sql store backend")
	}

	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return err
	}
	defer db.Close(database)

	ctx := commandContext(cmd)
	switch direction {
	case "up":
		err = db.RunMigrations(ctx, database.DB, cfg.DBDriver)
	case "down":
		err = db.MigrateDown(ctx, database.DB, cfg.DBDriver)
	}
	if err != nil {
		return err
	}

	version, err := db.Version(ctx, database.DB, cfg.DBDriver)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
	return nil
}
