package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/api/handler"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/api/middleware"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/model"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/logger"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/ratelimit"
	"github.com/ChaitanyaDhiman/ResumeForge/internal/pkg/response"
)

type Router struct {
	authHandler     *handler.AuthHandler
	oauthHandler    *handler.OAuthHandler
	sessionHandler  *handler.SessionHandler
	optimizeHandler *handler.OptimizeHandler
	usageHandler    *handler.UsageHandler
	adminHandler    *handler.AdminHandler
	limiter         *ratelimit.Limiter
	presets         ratelimit.Presets
	log             *logger.Logger
	cfg             *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	oauthHandler *handler.OAuthHandler,
	sessionHandler *handler.SessionHandler,
	optimizeHandler *handler.OptimizeHandler,
	usageHandler *handler.UsageHandler,
	adminHandler *handler.AdminHandler,
	limiter *ratelimit.Limiter,
	presets ratelimit.Presets,
	log *logger.Logger,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:     authHandler,
		oauthHandler:    oauthHandler,
		sessionHandler:  sessionHandler,
		optimizeHandler: optimizeHandler,
		usageHandler:    usageHandler,
		adminHandler:    adminHandler,
		limiter:         limiter,
		presets:         presets,
		log:             log,
		cfg:             cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(r.log))
	engine.Use(middleware.CORS(r.cfg.CORS))
	engine.NoRoute(func(c *gin.Context) {
		response.NotFoundError(c, "Route not found")
	})

	authRequired := middleware.Auth(r.cfg.JWT.Secret)

	api := engine.Group("/api/v1")
	{
		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/register",
				middleware.RateLimit(r.limiter, r.presets.Register, middleware.ByClientIP("register")),
				r.authHandler.Register)
			auth.POST("/login",
				middleware.RateLimit(r.limiter, r.presets.General, middleware.ByClientIP("login")),
				r.authHandler.Login)
			auth.POST("/verify-email",
				middleware.RateLimit(r.limiter, r.presets.General, middleware.ByClientIP("verify")),
				r.authHandler.VerifyEmail)
			// 按邮箱限流，在 handler 内完成
			auth.POST("/resend-otp", r.authHandler.ResendOTP)

			auth.GET("/oauth/:provider", r.oauthHandler.Authorize)
			auth.GET("/oauth/:provider/callback", r.oauthHandler.Callback)

			auth.GET("/session", authRequired, r.sessionHandler.Get)
			auth.POST("/session/refresh", authRequired, r.sessionHandler.Refresh)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(authRequired)
		{
			authenticated.GET("/usage", r.usageHandler.Get)

			// 顺序固定：会话、验证状态、限流、载荷校验与配额（handler 内）
			optimize := []gin.HandlerFunc{
				middleware.RateLimit(r.limiter, r.presets.Optimize, middleware.ByUserEmail("optimize")),
				r.optimizeHandler.Optimize,
			}
			if r.cfg.Auth.RequireVerifiedForOptimize {
				optimize = append([]gin.HandlerFunc{middleware.RequireVerified()}, optimize...)
			}
			authenticated.POST("/optimize", optimize...)
		}

		// 管理接口
		admin := api.Group("/admin")
		admin.Use(authRequired, middleware.RequireRole(model.RoleAdmin))
		{
			admin.PUT("/users/:id/plan", r.adminHandler.UpdatePlan)
		}
	}

	return engine
}
