package apiserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/watchair/watchair/internal/config"
	handlers "github.com/watchair/watchair/internal/handlers/v1"
	"github.com/watchair/watchair/pkg/metrics"
	"github.com/watchair/watchair/pkg/middleware"
)

const (
	gracefulShutdownTimeout = 5 * time.Second
)

type Server struct {
	cfg      *config.Config
	handler  *handlers.ServiceHandler
	listener net.Listener
}

// New returns a new instance of the watchair API server.
func New(
	cfg *config.Config,
	handler *handlers.ServiceHandler,
	listener net.Listener,
) *Server {
	return &Server{
		cfg:      cfg,
		handler:  handler,
		listener: listener,
	}
}

// Router builds the API routes with the middleware stack.
func (s *Server) Router(reg prometheus.Registerer) chi.Router {
	router := chi.NewRouter()

	metricMiddleware := metrics.NewMiddleware("api_server", nil)
	metricMiddleware.MustRegister(reg)

	router.Use(
		metricMiddleware.Handler,
		cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.Service.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{"X-Request-Id"},
			AllowCredentials: false,
			MaxAge:           300,
		}),
		middleware.RequestID,
		middleware.Logger(),
		chiMiddleware.Recoverer,
	)

	s.handler.RegisterRoutes(router)
	return router
}

func (s *Server) Run(ctx context.Context) error {
	zap.S().Named("api_server").Info("Initializing API server")

	srv := http.Server{Addr: s.cfg.Service.Address, Handler: s.Router(prometheus.DefaultRegisterer)}

	go func() {
		<-ctx.Done()
		zap.S().Named("api_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("api_server").Info("api server terminated")
	}()

	zap.S().Named("api_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, net.ErrClosed) && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
