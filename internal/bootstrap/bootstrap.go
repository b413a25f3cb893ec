package bootstrap

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/studentrecords/internal/app/controllers"
	appMigrations "github.com/yigit/studentrecords/internal/app/migrations"
	appRepos "github.com/yigit/studentrecords/internal/app/repositories"
	appRoutes "github.com/yigit/studentrecords/internal/app/routes"
	appServices "github.com/yigit/studentrecords/internal/app/services"
	"github.com/yigit/studentrecords/internal/config"
	"github.com/yigit/studentrecords/internal/db"
	appMiddleware "github.com/yigit/studentrecords/internal/middleware"
	"github.com/yigit/studentrecords/internal/pkg/apperrors"
	pkgAuth "github.com/yigit/studentrecords/internal/pkg/auth"
	"github.com/yigit/studentrecords/internal/pkg/logger"
	"github.com/yigit/studentrecords/internal/seed"
)

// DefaultConfigPath is where the config file is looked up when none is given
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and applies the bundled schema.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// RulesFromConfig maps the rules section onto the service rules
func RulesFromConfig(cfg *config.Config) appServices.Rules {
	return appServices.Rules{
		AllowDuplicateEmail: cfg.Rules.AllowDuplicateEmail,
		NameMinLength:       cfg.Rules.NameMinLength,
		NameMaxLength:       cfg.Rules.NameMaxLength,
	}
}

// NewJWTService builds the token service from the jwt section
func NewJWTService(cfg *config.Config) *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})
}

// BuildDependencies initializes services, controllers and middleware over the given repositories.
func BuildDependencies(cfg *config.Config, repos *appRepos.Repositories, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr, Repos: repos}

	deps.Services = appServices.NewServices(repos, RulesFromConfig(cfg), lgr)
	deps.JWTService = NewJWTService(cfg)
	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Department: appControllers.NewDepartmentController(deps.Services.DepartmentService, deps.Services.LectureService),
		Lecture:    appControllers.NewLectureController(deps.Services.LectureService),
		Student:    appControllers.NewStudentController(deps.Services.StudentService),
	}

	lgr.Info().Msg("Dependencies built.")
	return deps
}

// LoadSeed reads the seed directory, or the bundled sample data when dir is empty
func LoadSeed(dir string) (*seed.Dataset, error) {
	if dir == "" {
		return seed.Default()
	}
	return seed.Load(os.DirFS(dir))
}

// SeedData loads the configured dataset through the validation services when seeding is enabled.
// Rejected records are logged; they do not stop startup.
func SeedData(ctx context.Context, cfg *config.Config, deps *Dependencies) {
	if !cfg.Seed.Enabled {
		return
	}

	ds, err := LoadSeed(cfg.Seed.Dir)
	if err != nil {
		deps.Logger.Error().Err(err).Str("dir", cfg.Seed.Dir).Msg("Failed to read seed data, proceeding anyway...")
		return
	}

	if _, err := seed.Apply(ctx, ds, deps.Services, deps.Logger); err != nil {
		deps.Logger.Warn().Err(err).Msg("Some seed records were rejected")
	}
}

// SetupRouter creates the gin engine with middleware and all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, err
	}

	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	router.Use(appMiddleware.RequestID(), appMiddleware.RequestLogger(), gin.Recovery())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.NoRoute(func(c *gin.Context) {
		appMiddleware.HandleAPIError(c, apperrors.NewResourceNotFoundError("route "+c.Request.URL.Path+" not found"))
	})

	return router, nil
}
