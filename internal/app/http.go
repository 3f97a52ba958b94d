package app

import (
	"time"

	nethttp "github.com/yungbote/newsroom-backend/internal/http"
	"github.com/yungbote/newsroom-backend/internal/observability"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
	"github.com/yungbote/newsroom-backend/internal/platform/ratelimit"
)

func wireServer(log *logger.Logger, cfg Config, metrics *observability.Metrics, handlers Handlers, middleware Middleware) *nethttp.Server {
	log.Info("Wiring router...")
	return nethttp.NewServer(nethttp.RouterConfig{
		Log:             log,
		Metrics:         metrics,
		ServiceName:     cfg.ServiceName,
		TracingEnabled:  cfg.OtelEnabled,
		CORSOrigins:     cfg.CORSAllowedOrigins,
		LoginLimiter:    ratelimit.New(cfg.LoginRatePerSec, cfg.LoginBurst, 10*time.Minute),
		AuthMiddleware:  middleware.Auth,
		AuthHandler:     handlers.Auth,
		AccountHandler:  handlers.Account,
		CategoryHandler: handlers.Category,
		ArticleHandler:  handlers.Article,
		TagHandler:      handlers.Tag,
		HealthHandler:   handlers.Health,
	})
}
