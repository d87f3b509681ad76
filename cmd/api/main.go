package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/config"
	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/schedule"
	appHTTP "github.com/cmlabs-hris/workforce-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/calendar"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/i18n"
	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/workforce-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/workforce-backend-go/internal/service/attendance"
	compOffService "github.com/cmlabs-hris/workforce-backend-go/internal/service/compoff"
	leaveService "github.com/cmlabs-hris/workforce-backend-go/internal/service/leave"
	overtimeService "github.com/cmlabs-hris/workforce-backend-go/internal/service/overtime"
	reportService "github.com/cmlabs-hris/workforce-backend-go/internal/service/report"
	summaryService "github.com/cmlabs-hris/workforce-backend-go/internal/service/summary"
	"github.com/cmlabs-hris/workforce-backend-go/migrations"
	"github.com/go-chi/httplog/v3"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.App.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	logFormat := httplog.SchemaECS.Concise(cfg.App.Env == "development")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("env", cfg.App.Env),
	)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if cfg.App.MigrateOnStart {
		if err := migrations.Apply(ctx, db.Pool); err != nil {
			return fmt.Errorf("failed to apply migrations: %w", err)
		}
	}

	cal, err := calendar.LoadFile(cfg.Calendar.Path)
	if err != nil {
		return fmt.Errorf("failed to load holiday calendar: %w", err)
	}
	bundle, err := i18n.Load()
	if err != nil {
		return fmt.Errorf("failed to load translations: %w", err)
	}
	nightStart, err := schedule.ParseTimeOfDay(cfg.Overtime.NightStart)
	if err != nil {
		return fmt.Errorf("invalid NIGHT_START: %w", err)
	}
	loc := cfg.App.Timezone

	employeeRepo := postgresql.NewEmployeeRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	overtimeRepo := postgresql.NewOvertimeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	ledgerRepo := postgresql.NewCompOffLedgerRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	resolver := overtimeService.NewResolver(employeeRepo, scheduleRepo, overtimeRepo, cfg.Overtime.NoSchedule)
	calculator := overtimeService.NewCalculator(cfg.Overtime.Matching, nightStart)

	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		employeeRepo,
		scheduleRepo,
		resolver,
		calculator,
		cfg.Attendance,
		loc,
	)
	overtimeSvc := overtimeService.NewOvertimeService(db, overtimeRepo, employeeRepo, resolver)
	leaveSvc := leaveService.NewLeaveService(db, leaveRequestRepo, employeeRepo, leaveService.NewQuotaCalculator(cal))
	compOffSvc := compOffService.NewCompOffService(db, ledgerRepo, employeeRepo, cfg.CompOff.ExpiryMonths, loc)
	summarySvc := summaryService.NewSummaryService(
		db,
		employeeRepo,
		scheduleRepo,
		attendanceRepo,
		leaveRequestRepo,
		ledgerRepo,
		cal,
		cfg.CompOff.ExpiryMonths,
	)
	reportSvc := reportService.NewReportService(summarySvc, bundle, loc)

	scheduler := cron.NewScheduler()
	if err := cron.NewCompOffJobs(compOffSvc, cfg.CompOff.ExpiryInterval, loc).RegisterJobs(scheduler); err != nil {
		return fmt.Errorf("failed to register cron jobs: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{Logger: logger, AllowedOrigins: cfg.App.AllowedOrigins},
		JWTService,
		appHTTP.Handlers{
			Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
			Overtime:   appHTTP.NewOvertimeHandler(overtimeSvc),
			Leave:      appHTTP.NewLeaveHandler(leaveSvc),
			CompOff:    appHTTP.NewCompOffHandler(compOffSvc),
			Summary:    appHTTP.NewSummaryHandler(summarySvc),
			Report:     appHTTP.NewReportHandler(reportSvc),
		},
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String())
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
