package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/api"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/api/handler"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/database"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/cron"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/email"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/extractor"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/llm"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/logger"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/oauth"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/ratelimit"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/repository"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/service"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// 加载配置
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New("server", cfg.Server.Mode == "debug")

	// 初始化数据库
	db, err := database.Open(&cfg.Database, cfg.Server.Mode == "debug")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}
	log.Info().Str("driver", cfg.Database.Driver).Msg("database connected")

	// 初始化 Redis，OAuth state 依赖它
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect redis")
	}
	log.Info().Msg("redis connected")

	// 限流存储：redis 多实例共享，memory 需要定期清理过期窗口
	var store ratelimit.Store
	var sweeper *cron.Service
	if cfg.RateLimit.Store == "redis" {
		store = ratelimit.NewRedisStore(rdb)
	} else {
		memStore := ratelimit.NewMemoryStore()
		store = memStore
		sweeper = cron.NewService(memStore, cfg.RateLimit.SweepInterval, log)
		sweeper.Start()
	}
	limiter := ratelimit.NewLimiter(store)
	presets := ratelimit.PresetsFromConfig(&cfg.RateLimit)

	// 邮件
	mailer, err := email.NewMailer(&cfg.Email, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init mailer")
	}
	emailService := email.NewService(mailer, cfg.OTP.TTL())

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOtpRepository(db)
	logRepo := repository.NewOptimizationLogRepository(db)

	// 初始化 Service
	otpService := service.NewOTPService(otpRepo, cfg)
	authService := service.NewAuthService(userRepo, otpService, emailService, cfg)
	oauthService := service.NewOAuthService(oauth.NewRegistry(&cfg.OAuth), oauth.NewStateStore(rdb), authService)
	sessionService := service.NewSessionService(authService)
	quotaService := service.NewQuotaService(userRepo, logRepo)
	optimizeService := service.NewOptimizeService(quotaService, extractor.NewClient(&cfg.Extractor), llm.NewClient(&cfg.LLM))
	adminService := service.NewAdminService(userRepo, cfg.Auth.BcryptCost)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService, limiter, presets)
	oauthHandler := handler.NewOAuthHandler(oauthService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	optimizeHandler := handler.NewOptimizeHandler(optimizeService, cfg.Upload)
	usageHandler := handler.NewUsageHandler(quotaService)
	adminHandler := handler.NewAdminHandler(adminService)

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		oauthHandler,
		sessionHandler,
		optimizeHandler,
		usageHandler,
		adminHandler,
		limiter,
		presets,
		log,
		cfg,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Info().Msg("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if sweeper != nil {
		sweeper.Stop()
	}
	rdb.Close()
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info().Msg("server stopped")
}
