package main

import (
	"github.com/spf13/cobra"
	"github.com/yigit/studentrecords/internal/app/migrations"
	"github.com/yigit/studentrecords/internal/db"
)

func newMigrateCmd(root *rootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := loadConfig(root)
			if err != nil {
				return err
			}

			database, err := db.NewPostgresDB(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer database.Close()

			migrator := migrations.NewMigrator(database.Pool)
			if dir != "" {
				err = migrator.MigrateFromDirectory(cmd.Context(), dir)
			} else {
				err = migrator.Migrate(cmd.Context())
			}
			if err != nil {
				return err
			}

			lgr.Info().Msg("Database is up to date")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Directory of .sql files (default: bundled schema)")
	return cmd
}
