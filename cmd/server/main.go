// Command server runs the portfolio HTTP API.
//
//	@title						Portfolio API
//	@version					1.0
//	@description				Academic portfolio: profile, papers, courses, blogs, videos and contact form.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	_ "github.com/scholarfolio/portfolio-api/docs"
	"github.com/scholarfolio/portfolio-api/internal/api"
	"github.com/scholarfolio/portfolio-api/internal/api/metrics"
	"github.com/scholarfolio/portfolio-api/internal/app"
	"github.com/scholarfolio/portfolio-api/internal/core/domain"
	"github.com/scholarfolio/portfolio-api/internal/core/ports"
	"github.com/scholarfolio/portfolio-api/internal/core/service"
	"github.com/scholarfolio/portfolio-api/internal/infrastructure/db/redis"
	"github.com/scholarfolio/portfolio-api/internal/infrastructure/mail"
	"github.com/scholarfolio/portfolio-api/internal/infrastructure/queue"
	"github.com/scholarfolio/portfolio-api/internal/pkg/config"
	"github.com/scholarfolio/portfolio-api/internal/pkg/security"
	"github.com/scholarfolio/portfolio-api/pkg/logger"
)

func main() {
	// ─── Configuration & logging ──────────────────────────────────────
	cfg, err := config.Load(context.Background())
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "portfolio-api",
	})
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("store", cfg.Store).Msg("starting portfolio API")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Security primitives ──────────────────────────────────────────
	tokens, err := security.NewJWTManager(cfg.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("token signing is not configured")
	}
	hasher := security.NewBcryptHasher(cfg.BcryptCost)

	// ─── Store ────────────────────────────────────────────────────────
	stores, err := app.OpenStores(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}

	// ─── Profile cache (optional) ─────────────────────────────────────
	var (
		rdb          *goredis.Client
		profileCache ports.ProfileCache
	)
	if cfg.Redis.Addr != "" {
		rdb, err = redis.Connect(ctx, redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		profileCache = redis.NewProfileCache(rdb, cfg.Redis.ProfileCacheTTL)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("profile cache enabled")
	}

	// ─── Services ─────────────────────────────────────────────────────
	adminService := service.NewAdminService(stores.Admins, hasher, log)
	if created, err := app.EnsureAdmin(ctx, adminService, cfg.Admin); err != nil {
		log.Fatal().Err(err).Msg("failed to bootstrap admin")
	} else if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("bootstrap admin created")
	}

	var mailer ports.Mailer = mail.NewLogMailer(log)
	if cfg.SMTP.Enabled() {
		smtpMailer, err := mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			User:     cfg.SMTP.User,
			Password: cfg.SMTP.Password,
			To:       cfg.Contact.Receiver,
			Timeout:  cfg.SMTP.Timeout,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("invalid smtp configuration")
		}
		mailer = smtpMailer
	}

	dispatcher := queue.NewDispatcher(cfg.Contact.Workers, service.NewContactService(mailer, log), log)
	workerCtx, workerCancel := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)
	metrics.RegisterQueueDepth(dispatcher.Depth)

	e := api.NewRouter(api.Deps{
		Log:      log,
		Auth:     service.NewAuthService(stores.Admins, hasher, tokens, tokens, log),
		Profiles: service.NewProfileService(stores.Profiles, profileCache, log),
		Papers:   service.NewResourceService[*domain.Paper, domain.PaperPatch](domain.KindPaper, stores.Papers, domain.NewPaper, log),
		Courses:  service.NewResourceService[*domain.Course, domain.CoursePatch](domain.KindCourse, stores.Courses, domain.NewCourse, log),
		Blogs:    service.NewResourceService[*domain.Blog, domain.BlogPatch](domain.KindBlog, stores.Blogs, domain.NewBlog, log),
		Videos:   service.NewResourceService[*domain.Video, domain.VideoPatch](domain.KindVideo, stores.Videos, domain.NewVideo, log),
		Contact:  dispatcher,

		Mongo: stores.DB,
		Redis: rdb,

		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// ─── Graceful shutdown ────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http server shutdown error")
	}

	workerCancel()
	if pending := dispatcher.Depth(); pending > 0 {
		log.Warn().Int("pending", pending).Msg("contact messages dropped at shutdown")
	}

	if rdb != nil {
		_ = rdb.Close()
	}
	if err := stores.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("store close error")
	}

	log.Info().Msg("shutdown complete")
}
