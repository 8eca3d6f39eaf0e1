package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/bidyaloy/shikkha-api/api/swagger"
	"github.com/bidyaloy/shikkha-api/internal/handler"
	"github.com/bidyaloy/shikkha-api/internal/middleware"
	"github.com/bidyaloy/shikkha-api/internal/repository"
	"github.com/bidyaloy/shikkha-api/internal/seed"
	"github.com/bidyaloy/shikkha-api/internal/service"
	"github.com/bidyaloy/shikkha-api/internal/store"
	"github.com/bidyaloy/shikkha-api/pkg/cache"
	"github.com/bidyaloy/shikkha-api/pkg/config"
	"github.com/bidyaloy/shikkha-api/pkg/database"
	"github.com/bidyaloy/shikkha-api/pkg/logger"
	corsmiddleware "github.com/bidyaloy/shikkha-api/pkg/middleware/cors"
	reqidmiddleware "github.com/bidyaloy/shikkha-api/pkg/middleware/requestid"
	"github.com/bidyaloy/shikkha-api/pkg/storage"
)

// @title Shikkha API
// @version 1.0.0
// @description School management backend
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsSvc := service.NewMetricsService()

	st := store.New(store.WithMutationHook(metricsSvc.ObserveStoreMutation))
	if cfg.Seed.DemoData {
		snap, err := seed.Demo()
		if err != nil {
			logr.Sugar().Fatalw("failed to build demo data", "error", err)
		}
		st.Load(snap)
		logr.Sugar().Infow("demo data seeded")
	}

	sessionRepo := repository.NewSessionRepository(nil, logr)
	if cfg.Redis.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect redis", "error", err)
		}
		defer client.Close() //nolint:errcheck
		sessionRepo = repository.NewSessionRepository(client, logr)
	}

	backupFiles, err := storage.NewLocalStorage(cfg.Backup.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init backup storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Backup.SignedURLSecret, cfg.Backup.SignedURLTTL)

	backupCfg := service.BackupConfig{
		Retention:     cfg.Backup.Retention,
		WorkerRetries: cfg.Backup.WorkerRetries,
	}
	var backupSvc *service.BackupService
	if cfg.Archive.Enabled {
		db, err := database.NewPostgres(cfg.Archive)
		if err != nil {
			logr.Sugar().Fatalw("failed to connect archive database", "error", err)
		}
		defer db.Close() //nolint:errcheck
		backupSvc = service.NewBackupService(st, backupFiles, signer, repository.NewSnapshotArchiveRepository(db), logr, backupCfg)
	} else {
		backupSvc = service.NewBackupService(st, backupFiles, signer, nil, logr, backupCfg)
	}
	backupSvc.StartWorkers(ctx)
	defer backupSvc.StopWorkers()

	authSvc := service.NewAuthService(st, sessionRepo, nil, logr, service.AuthConfig{
		Secret:             cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
	})
	settingsSvc := service.NewSettingsService(st, nil, logr)
	exportSvc := service.NewExportService(st, logr)

	handlers := handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Students:   handler.NewStudentHandler(service.NewStudentService(st, nil, logr), exportSvc),
		Staff:      handler.NewStaffHandler(service.NewStaffService(st, nil, logr)),
		Academics:  handler.NewAcademicHandler(service.NewAcademicService(st, nil, logr)),
		Attendance: handler.NewAttendanceHandler(service.NewAttendanceService(st, nil, logr)),
		ClassTests: handler.NewClassTestHandler(service.NewClassTestService(st, nil, logr)),
		Exams:      handler.NewExamHandler(service.NewExamService(st, nil, logr), exportSvc),
		Library:    handler.NewLibraryHandler(service.NewLibraryService(st, nil, logr)),
		Leaves:     handler.NewLeaveHandler(service.NewLeaveService(st, nil, logr)),
		Notices:    handler.NewNoticeHandler(service.NewNoticeService(st, nil, logr)),
		Fees:       handler.NewFeeHandler(service.NewFeeService(st, nil, logr)),
		Settings:   handler.NewSettingsHandler(settingsSvc),
		Backups:    handler.NewBackupHandler(backupSvc),

		AuthService:     authSvc,
		SettingsService: settingsSvc,
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.RegisterRoutes(r, handlers)

	if cfg.Backup.AutoInterval > 0 {
		go runAutoBackups(ctx, backupSvc, metricsSvc, cfg.Backup.AutoInterval, logr)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}

	go func() {
		logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Sugar().Infow("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Sugar().Errorw("shutdown failed", "error", err)
	}
}

// runAutoBackups takes a scheduled snapshot backup every interval and prunes
// expired backup files and archive rows after each run.
func runAutoBackups(ctx context.Context, backups *service.BackupService, metrics *service.MetricsService, interval time.Duration, logr *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			info, _, err := backups.CreateBackup(ctx, "scheduled")
			if err != nil {
				logr.Sugar().Errorw("scheduled backup failed", "error", err)
				continue
			}
			metrics.ObserveBackup(time.Since(start))
			logr.Sugar().Infow("scheduled backup written", "file", info.Filename, "sizeBytes", info.SizeBytes)

			if err := backups.Cleanup(ctx); err != nil {
				logr.Sugar().Warnw("backup cleanup failed", "error", err)
			}
		}
	}
}
