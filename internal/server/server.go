package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/apperror"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/config"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/controller"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/dashboard"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/logging"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/metrics"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/middleware"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/repository"
	"gitlab.com/dirk.krummacker/customer-dashboard/internal/service"
)

// Server is one assembled service.
type Server struct {
	Name    string
	Engine  *gin.Engine
	Metrics *metrics.Metrics
	HTTP    *http.Server
	logger  zerolog.Logger
}

// BuildCustomer wires the customer service on db: repository, service, controller, router.
func BuildCustomer(cfg *config.Config, db *sqlx.DB) *Server {
	s := newServer("customer", cfg, apperror.DescribeURI)
	repo := repository.NewCustomerRepository(db, cfg.AuditUser)
	svc := service.NewCustomerService(repo)
	controller.NewCustomerController(svc).RegisterRoutes(s.Engine)
	return s
}

// BuildDashboard wires the dashboard: client of the customer service, controller, router.
func BuildDashboard(cfg *config.Config) *Server {
	s := newServer("dashboard", cfg, apperror.DescribeURIAndClient)
	client := dashboard.NewCustomerClient(cfg.Customer.AppURI,
		dashboard.WithHTTPClient(&http.Client{Timeout: cfg.Customer.Timeout}),
		dashboard.WithObserver(s.Metrics),
	)
	dashboard.NewController(client).RegisterRoutes(s.Engine)
	return s
}

// newServer creates the router with the middlewares shared by both services.
func newServer(name string, cfg *config.Config, describe apperror.DescribeFunc) *Server {
	logger := logging.NewServiceLogger(name)
	gin.SetMode(cfg.GinMode)

	m := metrics.New(name)
	router := gin.New()
	router.Use(middleware.RequestID())
	if cfg.GinLogging {
		router.Use(middleware.RequestLogger(logger))
	} else {
		logger.Info().Msg("turning off HTTP request logging")
	}
	router.Use(m.Middleware(), apperror.Recovery(describe), apperror.Handler(describe))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	router.GET("/metrics", gin.WrapH(m.Handler()))

	return &Server{
		Name:    name,
		Engine:  router,
		Metrics: m,
		HTTP: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Run serves until ctx is cancelled and then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.HTTP.Addr).Msg("listening")
		if err := s.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.HTTP.Shutdown(shutdownCtx)
}
