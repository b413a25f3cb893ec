package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/yigit/studentrecords/internal/bootstrap"
	"github.com/yigit/studentrecords/internal/config"
	"github.com/yigit/studentrecords/internal/pkg/logger"
	"github.com/yigit/studentrecords/internal/server"
)

// @title Student Records API
// @version 1.0
// @description Departments, lectures and students with their validation rules
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	configPath := flag.String("config", config.GetEnv("CONFIG_PATH", bootstrap.DefaultConfigPath), "path to the YAML config file")
	flag.Parse()

	// A missing .env file is fine; the environment may already be set
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Msg("Could not read .env file")
	}

	srv, err := server.NewServer(context.Background(), *configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
