package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-crm/internal/audit"
	"github.com/BruksfildServices01/clinic-crm/internal/config"
	dbpkg "github.com/BruksfildServices01/clinic-crm/internal/db"
	"github.com/BruksfildServices01/clinic-crm/internal/dispatch"
	"github.com/BruksfildServices01/clinic-crm/internal/domain/messaging"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/paymentlink"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/queue"
	infraRepo "github.com/BruksfildServices01/clinic-crm/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-crm/internal/infra/storage"
	"github.com/BruksfildServices01/clinic-crm/internal/jobs"
	"github.com/BruksfildServices01/clinic-crm/internal/logger"
	"github.com/BruksfildServices01/clinic-crm/internal/middleware"
	"github.com/BruksfildServices01/clinic-crm/internal/routes"
	"github.com/BruksfildServices01/clinic-crm/internal/session"
	"github.com/BruksfildServices01/clinic-crm/internal/timezone"
	ucAccount "github.com/BruksfildServices01/clinic-crm/internal/usecase/account"
	ucMessaging "github.com/BruksfildServices01/clinic-crm/internal/usecase/messaging"
	"github.com/BruksfildServices01/clinic-crm/internal/websocket"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	cfg := config.Load()

	zlog, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, zlog); err != nil {
		zlog.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, zlog *zap.Logger) error {
	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		return err
	}

	rdb, err := dbpkg.NewRedis(ctx, cfg)
	if err != nil {
		return err
	}
	defer rdb.Close()

	auditDispatcher := audit.NewDispatcher(audit.New(db), zlog)
	defer auditDispatcher.Close()

	// ======================================================
	// 📤 DISPAROS
	// ======================================================
	hub := websocket.NewHub(zlog)
	go hub.Run(ctx)

	openers := dispatch.Fanout{hub}
	if cfg.AMQPURL != "" {
		rabbit, err := queue.NewRabbitMQ(cfg.AMQPURL)
		if err != nil {
			return err
		}
		defer rabbit.Close()
		openers = append(openers, rabbit)
	}

	progress := dispatch.NewRedisProgressStore(rdb)
	dispatchQueue := dispatch.NewQueue(
		dispatch.Logged{Next: openers, Logger: zlog},
		cfg.DispatchInterval,
		zlog,
		dispatch.WithProgressStore(progress),
	)
	defer dispatchQueue.Close()

	leadRepo := infraRepo.NewLeadGormRepository(db)
	accountRepo := infraRepo.NewAccountGormRepository(db)

	bulk := ucMessaging.NewBulkDispatch(
		leadRepo,
		dispatchQueue,
		messaging.Composer{ClinicAddress: cfg.ClinicAddress},
		messaging.PhoneNormalizer{Region: cfg.PhoneRegion, CountryCode: cfg.DefaultCountryCode},
		hub,
		auditDispatcher,
		zlog,
	)

	provision := ucAccount.NewProvisionUser(accountRepo, auditDispatcher)
	if cfg.AdminBootstrapEnabled() {
		if err := ucAccount.EnsureAdmin(ctx, provision, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName, zlog); err != nil {
			return err
		}
	}

	deps := routes.Deps{
		Config:       cfg,
		DB:           db,
		Logger:       zlog,
		Audit:        auditDispatcher,
		Sessions:     session.NewStore(rdb),
		Hub:          hub,
		Queue:        dispatchQueue,
		Progress:     progress,
		LoginLimiter: middleware.NewRateLimiter(cfg.LoginRatePerMinute, 5),
		Bulk:         bulk,
		Provision:    provision,
	}

	// ======================================================
	// 🔌 INTEGRAÇÕES OPCIONAIS
	// ======================================================
	if cfg.MercadoPagoAccessToken != "" {
		mp, err := paymentlink.NewMercadoPago(cfg.MercadoPagoAccessToken)
		if err != nil {
			return err
		}
		deps.PaymentLinks = mp
	}
	if cfg.ExportBucket != "" {
		deps.Archive = storage.NewExportArchive(storage.S3Config{
			Bucket:    cfg.ExportBucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}

	// ======================================================
	// ⏰ JOBS
	// ======================================================
	crons := jobs.NewCronManager(timezone.Location(cfg.ClinicTimezone), zlog)
	reminders := jobs.NewReminders(leadRepo, bulk, timezone.Location(cfg.ClinicTimezone), zlog)
	if err := crons.Add("reminders", cfg.ReminderCron, 10*time.Minute, reminders.Run); err != nil {
		return err
	}
	if err := crons.Add("login-limiter-cleanup", "@every 10m", time.Minute, func(context.Context) error {
		deps.LoginLimiter.Cleanup(30 * time.Minute)
		return nil
	}); err != nil {
		return err
	}
	crons.Start()
	defer crons.Stop()

	// ======================================================
	// 🌐 HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	routes.RegisterRoutes(r, deps)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
