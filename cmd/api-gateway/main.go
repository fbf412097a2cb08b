package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/culiplan/culiplan-api/api/swagger"
	"github.com/culiplan/culiplan-api/internal/handler"
	"github.com/culiplan/culiplan-api/internal/middleware"
	"github.com/culiplan/culiplan-api/internal/repository"
	"github.com/culiplan/culiplan-api/internal/service"
	"github.com/culiplan/culiplan-api/pkg/cache"
	"github.com/culiplan/culiplan-api/pkg/config"
	"github.com/culiplan/culiplan-api/pkg/database"
	"github.com/culiplan/culiplan-api/pkg/logger"
	corsmiddleware "github.com/culiplan/culiplan-api/pkg/middleware/cors"
	reqidmiddleware "github.com/culiplan/culiplan-api/pkg/middleware/requestid"
	"github.com/culiplan/culiplan-api/pkg/storage"
)

// @title CuliPlan API
// @version 1.0.0
// @description Curriculum planner and class journal for vocational cooking programmes
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("database connection failed", "error", err)
	}
	defer db.Close()

	fileStore, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("export storage unavailable", "dir", cfg.Exports.StorageDir, "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var cacheSvc *service.CacheService
	if cfg.Dashboard.CacheEnabled {
		redisClient, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			// The cache is an optimization, so a missing Redis only
			// degrades the dashboard instead of blocking startup.
			logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		} else {
			cacheSvc = service.NewCacheService(service.CacheServiceParams{
				Store:   repository.NewCacheRepository(redisClient, logr),
				Metrics: metricsSvc,
				TTL:     cfg.Dashboard.CacheTTL,
			})
		}
	}

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	logRepo := repository.NewClassLogRepository(db)
	examRepo := repository.NewExamRepository(db)
	legendRepo := repository.NewLegendRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	profileRepo := repository.NewProfileRepository(db)

	authSvc := service.NewAuthService(service.AuthServiceParams{
		Users:             userRepo,
		Secret:            cfg.JWT.Secret,
		Expiration:        cfg.JWT.Expiration,
		RefreshExpiration: cfg.JWT.RefreshExpiration,
	})
	scheduleSvc := service.NewScheduleService(service.ScheduleServiceParams{
		Slots: scheduleRepo,
	})
	journalSvc := service.NewJournalService(service.JournalServiceParams{
		Logs:     logRepo,
		Schedule: scheduleSvc,
	})
	courseSvc := service.NewCourseService(service.CourseServiceParams{
		Courses: courseRepo,
		Logs:    logRepo,
		Exams:   examRepo,
		Cache:   cacheSvc,
	})
	examSvc := service.NewExamService(service.ExamServiceParams{
		Exams:   examRepo,
		Courses: courseRepo,
	})
	calendarSvc := service.NewCalendarService(service.CalendarServiceParams{
		Legend:   legendRepo,
		Events:   calendarRepo,
		Schedule: scheduleRepo,
		Logs:     logRepo,
		Exams:    examRepo,
	})
	profileSvc := service.NewProfileService(service.ProfileServiceParams{
		Profiles: profileRepo,
	})
	progressSvc := service.NewProgressService(service.ProgressServiceParams{
		Courses: courseRepo,
		Logs:    logRepo,
		Exams:   examRepo,
	})
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Courses: courseRepo,
		Logs:    logRepo,
		Exams:   examRepo,
		Cache:   cacheSvc,
		Logger:  logr,
	})
	reportSvc := service.NewReportService(service.ReportServiceParams{
		Courses:     courseRepo,
		Logs:        logRepo,
		Exams:       examRepo,
		Profiles:    profileRepo,
		Files:       fileStore,
		Logger:      logr,
		Concurrency: cfg.Exports.WorkerConcurrency,
		Retries:     cfg.Exports.WorkerRetries,
		Retention:   cfg.Exports.Retention,
	})
	reportSvc.Start(context.Background())
	defer reportSvc.Stop()

	exportSvc := service.NewExportService(service.ExportServiceParams{
		Courses:  courseRepo,
		Schedule: scheduleRepo,
		Logs:     logRepo,
		Exams:    examRepo,
		Events:   calendarRepo,
		Legend:   legendRepo,
		Profiles: profileRepo,
	})
	assistantSvc := service.NewAssistantService(service.AssistantServiceParams{
		Dataset: exportSvc,
		Logger:  logr,
		BaseURL: cfg.Assistant.BaseURL,
		APIKey:  cfg.Assistant.APIKey,
		Model:   cfg.Assistant.Model,
		Timeout: cfg.Assistant.Timeout,
	})

	authHandler := handler.NewAuthHandler(authSvc)
	courseHandler := handler.NewCourseHandler(courseSvc, progressSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	journalHandler := handler.NewJournalHandler(journalSvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc, exportSvc)
	examHandler := handler.NewExamHandler(examSvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	reportHandler := handler.NewReportHandler(reportSvc)
	backupHandler := handler.NewBackupHandler(exportSvc)
	assistantHandler := handler.NewAssistantHandler(assistantSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)

	protected := api.Group("")
	protected.Use(middleware.JWT(authSvc))

	protected.PUT("/auth/password", authHandler.ChangePassword)

	protected.GET("/courses", courseHandler.List)
	protected.POST("/courses", courseHandler.Create)
	protected.GET("/courses/:id", courseHandler.Get)
	protected.PUT("/courses/:id", courseHandler.Update)
	protected.DELETE("/courses/:id", courseHandler.Delete)
	protected.GET("/courses/:id/progress", courseHandler.Progress)

	protected.GET("/schedule", scheduleHandler.Template)
	protected.PUT("/schedule", scheduleHandler.Replace)
	protected.GET("/schedule/day", scheduleHandler.ForDate)

	protected.GET("/journal", journalHandler.List)
	protected.POST("/journal", journalHandler.Save)
	protected.GET("/journal/day", journalHandler.Day)
	protected.GET("/journal/scheduled-hours", journalHandler.ScheduledHours)
	protected.DELETE("/journal/:id", journalHandler.Delete)

	protected.GET("/calendar/legend", calendarHandler.Legend)
	protected.POST("/calendar/legend", calendarHandler.CreateLegendItem)
	protected.PUT("/calendar/legend/:id", calendarHandler.UpdateLegendItem)
	protected.DELETE("/calendar/legend/:id", calendarHandler.DeleteLegendItem)
	protected.GET("/calendar/events", calendarHandler.Events)
	protected.POST("/calendar/events/toggle", calendarHandler.ToggleEvent)
	protected.GET("/calendar/status", calendarHandler.DayStatus)
	protected.GET("/calendar/export", calendarHandler.ExportICS)

	protected.GET("/exams", examHandler.List)
	protected.POST("/exams", examHandler.Create)
	protected.PUT("/exams/:id", examHandler.Update)
	protected.DELETE("/exams/:id", examHandler.Delete)

	protected.GET("/dashboard", dashboardHandler.Summary)

	protected.GET("/reports/global", reportHandler.Global)
	protected.GET("/reports/module/:courseId", reportHandler.Module)
	protected.GET("/reports/journal", reportHandler.Journal)
	protected.POST("/reports/export", reportHandler.RequestExport)
	protected.GET("/reports/export/:filename", reportHandler.DownloadExport)

	protected.GET("/backup", backupHandler.Download)
	protected.POST("/backup", backupHandler.Import)

	protected.POST("/assistant/chat", assistantHandler.Chat)

	protected.GET("/profile/school", profileHandler.School)
	protected.PUT("/profile/school", profileHandler.SaveSchool)
	protected.GET("/profile/teacher", profileHandler.Teacher)
	protected.PUT("/profile/teacher", profileHandler.SaveTeacher)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
