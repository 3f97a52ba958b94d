package app

import (
	"context"

	httpH "github.com/yungbote/newsroom-backend/internal/http/handlers"
	httpMW "github.com/yungbote/newsroom-backend/internal/http/middleware"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
)

type healthCheck struct {
	name string
	ping func(ctx context.Context) error
}

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	Account  *httpH.AccountHandler
	Category *httpH.CategoryHandler
	Article  *httpH.ArticleHandler
	Tag      *httpH.TagHandler
}

func wireHandlers(log *logger.Logger, services Services, checks []healthCheck) Handlers {
	log.Info("Wiring handlers...")
	probes := make([]httpH.HealthCheck, 0, len(checks))
	for _, hc := range checks {
		probes = append(probes, httpH.HealthCheck{Name: hc.name, Ping: hc.ping})
	}
	return Handlers{
		Health:   httpH.NewHealthHandler(probes...),
		Auth:     httpH.NewAuthHandler(services.Auth),
		Account:  httpH.NewAccountHandler(services.Account),
		Category: httpH.NewCategoryHandler(services.Category),
		Article:  httpH.NewArticleHandler(services.Article),
		Tag:      httpH.NewTagHandler(services.Tag),
	}
}

func wireMiddleware(log *logger.Logger, services Services) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, services.Auth),
	}
}
