package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/newsroom-backend/internal/platform/logger"
)

type Server struct {
	Engine *gin.Engine

	log             *logger.Logger
	shutdownTimeout time.Duration
}

func NewServer(cfg RouterConfig) *Server {
	return &Server{Engine: NewRouter(cfg), log: cfg.Log, shutdownTimeout: 10 * time.Second}
}

// Run serves on address until ctx is cancelled, then drains in-flight
// requests.
func (s *Server) Run(ctx context.Context, address string) error {
	srv := &http.Server{
		Addr:              address,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.serve(ctx, srv, srv.ListenAndServe)
}

func (s *Server) serve(ctx context.Context, srv *http.Server, listen func() error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if s.log != nil {
			s.log.Info("HTTP server listening", "addr", srv.Addr)
		}
		if err := listen(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if s.log != nil {
			s.log.Info("HTTP server shutting down")
		}
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
