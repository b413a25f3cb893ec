// Command recordsctl runs maintenance tasks against the student records store.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/yigit/studentrecords/internal/bootstrap"
	"github.com/yigit/studentrecords/internal/config"
	"github.com/yigit/studentrecords/internal/pkg/logger"
)

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "recordsctl",
		Short:         "Maintenance commands for the student records service",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.GetEnv("CONFIG_PATH", bootstrap.DefaultConfigPath), "path to the YAML config file")

	cmd.AddCommand(
		newMigrateCmd(&opts),
		newImportCmd(&opts),
		newTokenCmd(&opts),
	)
	return cmd
}

// loadConfig reads the config and sends logs to stderr so stdout stays machine-readable
func loadConfig(opts *rootOptions) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return nil, zerolog.Logger{}, err
	}
	logger.Configure(logger.Config{
		Level:  logger.ParseLevel(cfg.Logging.Level),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
		Output: os.Stderr,
	})
	return cfg, logger.Get(), nil
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintln(os.Stderr, "could not read .env file:", err)
	}

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
