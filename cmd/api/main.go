package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrkunal0430/hrms/internal/config"
	"github.com/mrkunal0430/hrms/internal/domain/request"
	appHTTP "github.com/mrkunal0430/hrms/internal/handler/http"
	"github.com/mrkunal0430/hrms/internal/pkg/cron"
	"github.com/mrkunal0430/hrms/internal/pkg/database"
	"github.com/mrkunal0430/hrms/internal/pkg/jwt"
	"github.com/mrkunal0430/hrms/internal/repository/postgresql"
	"github.com/mrkunal0430/hrms/internal/service/approval"
	attendanceService "github.com/mrkunal0430/hrms/internal/service/attendance"
	dashboardService "github.com/mrkunal0430/hrms/internal/service/dashboard"
	notificationService "github.com/mrkunal0430/hrms/internal/service/notification"
	settingsService "github.com/mrkunal0430/hrms/internal/service/settings"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), cfg.Database.QueryTimeout)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	loc := cfg.Location()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	recomputeQueue := postgresql.NewRecomputeQueueRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	officeRepo := postgresql.NewOfficeRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	notifier := notificationService.NewNotificationService(notificationRepo, notificationService.Config{})
	settingsSvc := settingsService.NewService(settingsRepo)

	attendanceSvc := attendanceService.NewService(
		attendanceRepo,
		requestRepo,
		holidayRepo,
		officeRepo,
		employeeRepo,
		settingsSvc,
		notifier,
		func(ctx context.Context, fn func(context.Context) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
		loc,
		cfg.Database.QueryTimeout,
	)

	engine := approval.NewEngine(requestRepo, recomputeQueue, notifier, map[request.Kind]approval.ApplyFunc{
		request.KindLeave: func(ctx context.Context, req request.Request) error {
			_, err := attendanceSvc.ApplyLeaveOrWFH(ctx, req)
			return err
		},
		request.KindWFH: func(ctx context.Context, req request.Request) error {
			_, err := attendanceSvc.ApplyLeaveOrWFH(ctx, req)
			return err
		},
		request.KindRegularization: func(ctx context.Context, req request.Request) error {
			_, err := attendanceSvc.ApplyRegularization(ctx, req)
			return err
		},
	})

	dashboardSvc := dashboardService.NewService(dashboardRepo, employeeRepo, loc)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, jwtService, loc)
	requestHandler := appHTTP.NewRequestHandler(engine, jwtService)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	holidayHandler := appHTTP.NewHolidayHandler(holidayRepo)
	officeHandler := appHTTP.NewOfficeHandler(officeRepo)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{Env: cfg.App.Env, AllowedOrigins: cfg.App.AllowedOrigins},
		jwtService,
		attendanceHandler,
		requestHandler,
		dashboardHandler,
		holidayHandler,
		officeHandler,
	)

	jobs := cron.NewAttendanceJobs(attendanceSvc, engine, employeeRepo, recomputeQueue, notifier, loc)
	scheduler := cron.NewScheduler()
	scheduler.AddJob("materialize_attendance_days", cfg.Cron.MaterializeInterval, jobs.MaterializeYesterday)
	scheduler.AddJob("retry_failed_recomputations", cfg.Cron.RecomputeInterval, jobs.RetryFailedRecomputations)
	scheduler.Start()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port %d", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	scheduler.Stop()
	notifier.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Println("Server shutdown error:", err)
	}
}
