package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"time"

	"github.com/finratios/fin_report_app/internal/adapters/database/memory"
	"github.com/finratios/fin_report_app/internal/adapters/database/pgsql"
	"github.com/finratios/fin_report_app/internal/artifacts"
	portsrepo "github.com/finratios/fin_report_app/internal/core/ports/repositories"
	portssvc "github.com/finratios/fin_report_app/internal/core/ports/services"
	"github.com/finratios/fin_report_app/internal/core/services"
	"github.com/finratios/fin_report_app/internal/handlers"
	"github.com/finratios/fin_report_app/internal/middleware"
	"github.com/finratios/fin_report_app/internal/render"
	"github.com/finratios/fin_report_app/internal/utils"
	"github.com/finratios/fin_report_app/pkg/config"
	"github.com/finratios/fin_report_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ulule/limiter/v3"
	limitermemory "github.com/ulule/limiter/v3/drivers/store/memory"
)

// @title Financial Ratio Reports API
// @version 1.0
// @description Generates financial ratio reports in pdf, xlsx, csv and doc formats, billed in whole credits.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	artifactStore, err := buildArtifactStore(cfg)
	if err != nil {
		logger.Error("Failed to initialize artifact store", slog.String("error", err.Error()))
		os.Exit(1)
	}

	serviceContainer := buildServices(repos, artifactStore, cfg)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.PosthogAPIKey != "" {
		posthogClient := utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
		defer posthogClient.Close()
		r.Use(middleware.PosthogMiddleware(posthogClient))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, buildReportLimiter(cfg, logger))

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

type repositorySet struct {
	User          portsrepo.UserRepository
	Company       portsrepo.CompanyRepository
	FinancialData portsrepo.FinancialDataRepository
	Credit        portsrepo.CreditAccountRepository
	Report        portsrepo.ReportRepository
}

// buildRepositories connects to PostgreSQL when PGSQL_URL is set, running
// migrations first; otherwise it falls back to in-memory storage.
func buildRepositories(cfg *config.Config, logger *slog.Logger) (*repositorySet, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("Running with in-memory storage; data will not survive a restart")
		return &repositorySet{
			User:          memory.NewUserRepository(),
			Company:       memory.NewCompanyRepository(),
			FinancialData: memory.NewFinancialDataRepository(),
			Credit:        memory.NewCreditAccountRepository(),
			Report:        memory.NewReportRepository(),
		}, func() {}, nil
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		dbPool.Close()
		return nil, nil, err
	}

	return &repositorySet{
		User:          pgsql.NewPgxUserRepository(dbPool),
		Company:       pgsql.NewPgxCompanyRepository(dbPool),
		FinancialData: pgsql.NewPgxFinancialDataRepository(dbPool),
		Credit:        pgsql.NewPgxCreditAccountRepository(dbPool),
		Report:        pgsql.NewPgxReportRepository(dbPool),
	}, func() { database.ClosePgxPool(dbPool) }, nil
}

func runMigrations(databaseURL string, logger *slog.Logger) error {
	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer migrationDB.Close()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	logger.Info("Database migrations up to date.")
	return nil
}

func buildArtifactStore(cfg *config.Config) (artifacts.Store, error) {
	if cfg.ArtifactDir == "" {
		return artifacts.NewMemoryStore(), nil
	}
	return artifacts.NewFileStore(cfg.ArtifactDir)
}

func buildServices(repos *repositorySet, artifactStore artifacts.Store, cfg *config.Config) *portssvc.ServiceContainer {
	creditSvc := services.NewCreditService(repos.Credit)

	return &portssvc.ServiceContainer{
		User:          services.NewUserService(repos.User, creditSvc),
		Company:       services.NewCompanyService(repos.Company),
		FinancialData: services.NewFinancialDataService(repos.FinancialData, repos.Company),
		Credit:        creditSvc,
		Report: services.NewReportService(
			repos.Report,
			repos.FinancialData,
			repos.Company,
			creditSvc,
			render.NewRegistry(),
			artifactStore,
			cfg.ReportUnitPrice,
		),
	}
}

func buildReportLimiter(cfg *config.Config, logger *slog.Logger) *limiter.Limiter {
	if cfg.RateLimit == "" {
		return nil
	}
	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Warn("Invalid RATE_LIMIT format, disabling rate limiting",
			slog.String("rate_limit", cfg.RateLimit),
			slog.String("error", err.Error()))
		return nil
	}
	return limiter.New(limitermemory.NewStore(), rate)
}
