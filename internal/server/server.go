// Package server exposes the pet over a small local JSON API.
package server

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/saadjs/nutripet/internal/service"
)

type Options struct {
	DB            *sql.DB
	Provider      string
	Credentials   service.Credentials
	LookupTimeout time.Duration
	// Searcher, when set, serves every food lookup instead of the provider.
	Searcher service.Searcher
	Now      func() time.Time
}

type Server struct {
	db          *sql.DB
	provider    string
	credentials service.Credentials
	timeout     time.Duration
	searcher    service.Searcher
	now         func() time.Time
	metrics     *metrics
	router      *gin.Engine
}

func New(opts Options) *Server {
	s := &Server{
		db:          opts.DB,
		provider:    opts.Provider,
		credentials: opts.Credentials,
		timeout:     opts.LookupTimeout,
		searcher:    opts.Searcher,
		now:         opts.Now,
		metrics:     newMetrics(),
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.router = gin.New()
	s.router.Use(gin.Recovery(), s.observe())
	s.registerRoutes(s.router)
	return s
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.registry, promhttp.HandlerOpts{})))

	api := router.Group("/api")
	api.GET("/pet", s.getPet)
	api.GET("/meals", s.listMeals)
	api.POST("/meals", s.createMeal)
	api.GET("/profile", s.getProfile)
	api.PUT("/profile", s.updateProfile)
	api.GET("/foods", s.searchFoods)
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		slog.Info("dashboard listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		slog.Info("dashboard shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// observe logs each request and records its latency.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(status)).Observe(elapsed.Seconds())
		slog.Debug("request", "method", c.Request.Method, "route", route, "status", status, "elapsed", elapsed)
	}
}

// apiError writes {"error": message}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
