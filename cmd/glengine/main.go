package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/finbooks/gl_engine/internal/apperrors"
	"github.com/finbooks/gl_engine/internal/core/domain"
	portsrepo "github.com/finbooks/gl_engine/internal/core/ports/repositories"
	portssvc "github.com/finbooks/gl_engine/internal/core/ports/services"
	"github.com/finbooks/gl_engine/internal/core/services"
	"github.com/finbooks/gl_engine/internal/handlers"
	"github.com/finbooks/gl_engine/internal/middleware"
	"github.com/finbooks/gl_engine/internal/repositories/database/pgsql"
	"github.com/finbooks/gl_engine/pkg/config"
	"github.com/finbooks/gl_engine/pkg/database"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established")

	if err := runMigrations(cfg.DatabaseURL, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repos := pgsql.NewRepositoryProvider(dbPool)

	if err := seedSettings(context.Background(), repos.SequenceRepo, cfg); err != nil {
		logger.Error("Failed to seed ledger settings", slog.String("error", err.Error()))
		os.Exit(1)
	}

	auditSvc := services.NewAuditService(repos.AuditRepo)
	sequenceSvc := services.NewSequenceService(repos.SequenceRepo)
	snapshotSvc := services.NewSnapshotService(repos.SnapshotRepo, repos.LedgerRepo, repos.AccountRepo, repos.PeriodRepo, cfg.FiscalYearStartMonth)
	journalSvc := services.NewJournalService(repos.JournalRepo, repos.LedgerRepo, repos.AccountRepo, repos.PeriodRepo, sequenceSvc, auditSvc, services.JournalServiceOptions{
		RequireConfiguredPeriods: cfg.RequireConfiguredPeriods,
		FiscalYearStartMonth:     cfg.FiscalYearStartMonth,
	})

	container := &portssvc.ServiceContainer{
		Account:   services.NewAccountService(repos.AccountRepo),
		Journal:   journalSvc,
		Period:    services.NewPeriodService(repos.PeriodRepo, snapshotSvc, auditSvc, cfg.FiscalYearStartMonth),
		Ledger:    services.NewLedgerService(repos.LedgerRepo, repos.AccountRepo),
		Reporting: services.NewReportingService(repos.LedgerRepo, repos.AccountRepo, repos.SnapshotRepo, cfg.FiscalYearStartMonth),
		Snapshot:  snapshotSvc,
		Sequence:  sequenceSvc,
		Audit:     auditSvc,
		Adapters:  services.NewSourceAdapterService(journalSvc, sequenceSvc, cfg.FiscalYearStartMonth),
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-User-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("rate", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending migrations from the migrations directory
// over a temporary database/sql connection on the pgx stdlib driver.
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

	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	if sourceErr, dbErr := m.Close(); sourceErr != nil {
		return sourceErr
	} else if dbErr != nil {
		return dbErr
	}

	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
	} else {
		logger.Info("Database migrations applied")
	}
	return nil
}

// seedSettings creates the singleton settings row on first boot so the
// sequence allocator and period manager have a prefix and fiscal calendar.
func seedSettings(ctx context.Context, sequenceRepo portsrepo.SequenceRepository, cfg *config.Config) error {
	_, err := sequenceRepo.GetSettings(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}

	now := time.Now().UTC()
	return sequenceRepo.SaveSettings(ctx, domain.LedgerSettings{
		JournalEntryPrefix:   cfg.JournalEntryPrefix,
		Currency:             "USD",
		FiscalYearStartMonth: cfg.FiscalYearStartMonth,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		},
	})
}
