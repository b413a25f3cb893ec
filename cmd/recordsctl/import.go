package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yigit/studentrecords/internal/app/migrations"
	"github.com/yigit/studentrecords/internal/app/repositories"
	"github.com/yigit/studentrecords/internal/app/repositories/memory"
	"github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/bootstrap"
	"github.com/yigit/studentrecords/internal/config"
	"github.com/yigit/studentrecords/internal/db"
	"github.com/yigit/studentrecords/internal/seed"
)

type importOptions struct {
	dir   string
	apply bool
}

type importResult struct {
	Applied bool        `json:"applied"`
	Report  seed.Report `json:"report"`
	Errors  []string    `json:"errors,omitempty"`
}

func newImportCmd(root *rootOptions) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Validate and load departments, lectures and students from a CSV directory",
		Long: "Reads departments.csv, lectures.csv, students.csv and the optional association files.\n" +
			"Without --apply the records are checked against an empty in-memory store and nothing is written.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, lgr, err := loadConfig(root)
			if err != nil {
				return err
			}
			return runImport(cmd.Context(), cmd.OutOrStdout(), cfg, opts, lgr)
		},
	}

	cmd.Flags().StringVar(&opts.dir, "dir", "", "Directory containing the CSV files (default: bundled sample data)")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Write to the database (default is dry-run)")
	return cmd
}

func runImport(ctx context.Context, out io.Writer, cfg *config.Config, opts importOptions, lgr zerolog.Logger) error {
	ds, err := bootstrap.LoadSeed(opts.dir)
	if err != nil {
		return fmt.Errorf("reading seed data: %w", err)
	}

	var repos *repositories.Repositories
	if opts.apply {
		database, err := db.NewPostgresDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		if err := migrations.NewMigrator(database.Pool).Migrate(ctx); err != nil {
			return err
		}
		repos = repositories.NewRepositories(database)
	} else {
		repos = memory.NewRepositories()
	}

	svc := services.NewServices(repos, bootstrap.RulesFromConfig(cfg), lgr)
	report, applyErr := seed.Apply(ctx, ds, svc, lgr)

	result := importResult{Applied: opts.apply, Report: report}
	if applyErr != nil {
		result.Errors = splitJoined(applyErr)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return err
	}

	if applyErr != nil {
		return fmt.Errorf("%d record(s) failed", len(result.Errors))
	}
	return nil
}

// splitJoined lists the messages of an errors.Join result one by one
func splitJoined(err error) []string {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return []string{err.Error()}
	}
	var out []string
	for _, e := range joined.Unwrap() {
		out = append(out, e.Error())
	}
	return out
}
