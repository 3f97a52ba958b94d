package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	types "github.com/yungbote/newsroom-backend/internal/domain"
	httpH "github.com/yungbote/newsroom-backend/internal/http/handlers"
	httpMW "github.com/yungbote/newsroom-backend/internal/http/middleware"
	"github.com/yungbote/newsroom-backend/internal/observability"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
	"github.com/yungbote/newsroom-backend/internal/platform/ratelimit"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	TracingEnabled bool
	CORSOrigins    []string
	LoginLimiter   *ratelimit.KeyedLimiter

	AuthMiddleware *httpMW.AuthMiddleware

	AuthHandler     *httpH.AuthHandler
	AccountHandler  *httpH.AccountHandler
	CategoryHandler *httpH.CategoryHandler
	ArticleHandler  *httpH.ArticleHandler
	TagHandler      *httpH.TagHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.TracingEnabled {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachRequestContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api")
	{
		// Auth (public)
		if cfg.AuthHandler != nil {
			api.POST("/auth/login", httpMW.RateLimitByIP(cfg.LoginLimiter, cfg.Metrics), cfg.AuthHandler.Login)
		}
	}

	protected := api.Group("/")
	if cfg.AuthMiddleware != nil {
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}

	// Staff and administrative roles may edit content; account management is
	// administrative only.
	editors := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	admins := editors
	if cfg.AuthMiddleware != nil {
		editors = cfg.AuthMiddleware.RequireRoles(types.RoleStaff, types.RoleLecturer)
		admins = cfg.AuthMiddleware.RequireAdmin()
	}

	{
		// Auth (protected)
		if cfg.AuthHandler != nil {
			protected.GET("/auth/whoami", cfg.AuthHandler.WhoAmI)
			protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		}

		// Profile
		if cfg.AccountHandler != nil {
			protected.GET("/profile", cfg.AccountHandler.GetProfile)
			protected.PUT("/profile", cfg.AccountHandler.UpdateProfile)
		}

		// Articles
		if cfg.ArticleHandler != nil {
			protected.GET("/articles", cfg.ArticleHandler.List)
			protected.GET("/articles/mine", cfg.ArticleHandler.ListMine)
			protected.GET("/articles/:id", cfg.ArticleHandler.Get)
			protected.POST("/articles", editors, cfg.ArticleHandler.Create)
			protected.PUT("/articles/:id", editors, cfg.ArticleHandler.Update)
			protected.DELETE("/articles/:id", editors, cfg.ArticleHandler.Delete)
		}

		// Categories
		if cfg.CategoryHandler != nil {
			protected.GET("/categories", cfg.CategoryHandler.List)
			protected.GET("/categories/:id", cfg.CategoryHandler.Get)
			protected.POST("/categories", editors, cfg.CategoryHandler.Create)
			protected.PUT("/categories/:id", editors, cfg.CategoryHandler.Update)
			protected.DELETE("/categories/:id", editors, cfg.CategoryHandler.Delete)
		}

		// Tags
		if cfg.TagHandler != nil {
			protected.GET("/tags", cfg.TagHandler.List)
			protected.GET("/tags/:id", cfg.TagHandler.Get)
			protected.GET("/tags/:id/articles", cfg.TagHandler.ListArticles)
			protected.POST("/tags", editors, cfg.TagHandler.Create)
			protected.PUT("/tags/:id", editors, cfg.TagHandler.Update)
			protected.DELETE("/tags/:id", editors, cfg.TagHandler.Delete)
		}

		// Accounts
		if cfg.AccountHandler != nil {
			accounts := protected.Group("/accounts", admins)
			accounts.GET("", cfg.AccountHandler.List)
			accounts.POST("", cfg.AccountHandler.Create)
			accounts.GET("/:id", cfg.AccountHandler.Get)
			accounts.PUT("/:id", cfg.AccountHandler.Update)
			accounts.DELETE("/:id", cfg.AccountHandler.Delete)
		}
	}

	return r
}
