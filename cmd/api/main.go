package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cmlabs-hris/payroll-budget-go/internal/config"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/acquisition"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/budget"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/overtime"
	"github.com/cmlabs-hris/payroll-budget-go/internal/domain/vacation"
	appHTTP "github.com/cmlabs-hris/payroll-budget-go/internal/handler/http"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/cache"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-budget-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/payroll-budget-go/internal/repository/memory"
	"github.com/cmlabs-hris/payroll-budget-go/internal/repository/postgresql"
	acquisitionService "github.com/cmlabs-hris/payroll-budget-go/internal/service/acquisition"
	budgetService "github.com/cmlabs-hris/payroll-budget-go/internal/service/budget"
	employeeService "github.com/cmlabs-hris/payroll-budget-go/internal/service/employee"
	overtimeService "github.com/cmlabs-hris/payroll-budget-go/internal/service/overtime"
	vacationService "github.com/cmlabs-hris/payroll-budget-go/internal/service/vacation"
	"github.com/go-chi/httplog/v3"
)

// repositories is the storage backend selected by STORAGE_DRIVER.
type repositories struct {
	tx          database.Transactor
	employee    employee.EmployeeRepository
	budget      budget.BudgetPeriodRepository
	acquisition acquisition.AcquisitionPeriodRepository
	overtime    overtime.OvertimeEntryRepository
	vacation    vacation.VacationEntryRepository
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error loading config:", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(cfg.App.LogLevel))); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(!cfg.IsProduction())
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "payroll-budget"),
		slog.String("env", cfg.App.Env),
	)
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer repos.close()

	var activeCache budget.ActivePeriodCache
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return fmt.Errorf("connect redis: %w", err)
		}
		defer client.Close()
		activeCache = cache.NewActivePeriodCache(client, cfg.Redis.TTL)
		logger.Info("active budget period cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
	}

	budgetSvc := budgetService.NewBudgetPeriodService(repos.budget, activeCache, logger)
	acquisitionSvc := acquisitionService.NewAcquisitionPeriodService(repos.acquisition, repos.employee, logger)
	overtimeSvc := overtimeService.NewOvertimeService(repos.tx, repos.overtime, repos.budget, repos.employee, logger)
	vacationSvc := vacationService.NewVacationService(repos.tx, repos.vacation, repos.budget, repos.employee, acquisitionSvc, logger)
	employeeSvc := employeeService.NewEmployeeService(repos.employee)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.HTTP.AllowedOrigins,
			RateLimit:      cfg.HTTP.RateLimit,
			RateWindow:     cfg.HTTP.RateWindow,
			Production:     cfg.IsProduction(),
		},
		logger,
		jwtService.JWTAuth(),
		appHTTP.Handlers{
			BudgetPeriod:      appHTTP.NewBudgetPeriodHandler(budgetSvc),
			AcquisitionPeriod: appHTTP.NewAcquisitionPeriodHandler(acquisitionSvc),
			Overtime:          appHTTP.NewOvertimeHandler(overtimeSvc),
			Vacation:          appHTTP.NewVacationHandler(vacationSvc),
			Employee:          appHTTP.NewEmployeeHandler(employeeSvc),
		},
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", server.Addr, "storage", cfg.Storage.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func openRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (repositories, error) {
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		store := memory.NewStore()
		if cfg.Storage.EmployeeSeed != "" {
			n, err := store.LoadEmployees(cfg.Storage.EmployeeSeed)
			if err != nil {
				return repositories{}, fmt.Errorf("seed employees: %w", err)
			}
			logger.Info("employees seeded", "count", n, "path", cfg.Storage.EmployeeSeed)
		}
		return repositories{
			tx:          store,
			employee:    memory.NewEmployeeRepository(store),
			budget:      memory.NewBudgetPeriodRepository(store),
			acquisition: memory.NewAcquisitionPeriodRepository(store),
			overtime:    memory.NewOvertimeEntryRepository(store),
			vacation:    memory.NewVacationEntryRepository(store),
			close:       func() {},
		}, nil

	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		}, logger)
		if err != nil {
			return repositories{}, fmt.Errorf("connect database: %w", err)
		}
		if cfg.Database.AutoMigrate {
			if err := db.RunMigrations(); err != nil {
				db.Close()
				return repositories{}, fmt.Errorf("run migrations: %w", err)
			}
		}
		return repositories{
			tx:          db,
			employee:    postgresql.NewEmployeeRepository(db),
			budget:      postgresql.NewBudgetPeriodRepository(db),
			acquisition: postgresql.NewAcquisitionPeriodRepository(db),
			overtime:    postgresql.NewOvertimeEntryRepository(db),
			vacation:    postgresql.NewVacationEntryRepository(db),
			close:       db.Close,
		}, nil
	}
}
