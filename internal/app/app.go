package app

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/newsroom-backend/internal/data/db"
	nethttp "github.com/yungbote/newsroom-backend/internal/http"
	"github.com/yungbote/newsroom-backend/internal/observability"
	"github.com/yungbote/newsroom-backend/internal/platform/logger"
	"github.com/yungbote/newsroom-backend/internal/services"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Store    *db.Service
	DB       *gorm.DB
	Repos    Repos
	Services Services
	Clients  Clients
	Metrics  *observability.Metrics
	Server   *nethttp.Server

	otelShutdown func(context.Context) error
}

// New wires the full HTTP application: store, clients, services and router.
func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	a, err := open(log, cfg)
	if err != nil {
		return nil, err
	}

	clients, err := wireClients(log, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Clients = clients
	a.Services = wireServices(a.DB, log, cfg, a.Repos, clients)

	a.otelShutdown = observability.InitOTel(ctx, log, cfg.OtelConfig())
	a.Metrics = observability.Init(log, cfg.MetricsEnabled)
	if sqlDB, err := a.DB.DB(); err == nil {
		if err := a.Metrics.RegisterDB(sqlDB, "newsroom"); err != nil {
			log.Warn("Register DB stats collector failed", "error", err)
		}
	}

	checks := append([]healthCheck{{name: "database", ping: a.pingDB}}, clients.healthChecks()...)
	gin.SetMode(cfg.GinMode)
	handlers := wireHandlers(log, a.Services, checks)
	middleware := wireMiddleware(log, a.Services)
	a.Server = wireServer(log, cfg, a.Metrics, handlers, middleware)
	return a, nil
}

// NewTooling wires only the store and services for one-shot commands. Token
// revocation stays in memory.
func NewTooling(log *logger.Logger, cfg Config) (*App, error) {
	a, err := open(log, cfg)
	if err != nil {
		return nil, err
	}
	a.Clients = Clients{Revoker: services.NewMemoryRevoker()}
	a.Services = wireServices(a.DB, log, cfg, a.Repos, a.Clients)
	return a, nil
}

func open(log *logger.Logger, cfg Config) (*App, error) {
	store, err := db.Open(log, cfg.DBOptions())
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	theDB := store.DB()
	return &App{
		Log:   log,
		Cfg:   cfg,
		Store: store,
		DB:    theDB,
		Repos: wireRepos(theDB, log),
	}, nil
}

func (a *App) Migrate() error {
	if a == nil || a.Store == nil {
		return errors.New("app not initialized")
	}
	a.Log.Info("Running migrations...")
	if err := a.Store.AutoMigrateAll(); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// EnsureAdmin seeds the configured administrator. It is a no-op when
// ADMIN_ACCOUNT_EMAIL is empty.
func (a *App) EnsureAdmin(ctx context.Context) error {
	if a == nil || a.Services.Auth == nil {
		return errors.New("app not initialized")
	}
	admin, err := a.Services.Auth.EnsureAdminAccount(ctx, a.Cfg.AdminAccount())
	if err != nil {
		return fmt.Errorf("ensure admin account: %w", err)
	}
	if admin == nil {
		a.Log.Warn("ADMIN_ACCOUNT_EMAIL not set; no administrator seeded")
		return nil
	}
	a.Log.Info("Admin account ready", "account_id", admin.ID)
	return nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return errors.New("app not initialized")
	}
	return a.Server.Run(ctx, net.JoinHostPort("", a.Cfg.Port))
}

func (a *App) pingDB(ctx context.Context) error {
	sqlDB, err := a.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil {
			a.Log.Warn("OTel shutdown failed", "error", err)
		}
		a.otelShutdown = nil
	}
	a.Clients.Close()
	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Log.Warn("Database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
