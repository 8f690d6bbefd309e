// Package server exposes a read-only HTTP view of the plan.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/julianstephens/workplan/internal/constants"
	"github.com/julianstephens/workplan/internal/logger"
	"github.com/julianstephens/workplan/internal/models"
	"github.com/julianstephens/workplan/internal/plan"
	"github.com/julianstephens/workplan/internal/render"
)

const shutdownTimeout = 5 * time.Second

// Config is the dependency bag passed to New
type Config struct {
	Addr  string
	Mode  string
	Title string
}

// Server serves the printable page and the plan as JSON
type Server struct {
	gin   *gin.Engine
	addr  string
	title string

	// The store is single-threaded; requests take turns reloading it.
	mu    sync.Mutex
	store *plan.Store
}

func New(store *plan.Store, cfg Config) (*Server, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if cfg.Addr == "" {
		cfg.Addr = constants.DefaultServeAddr
	}
	if cfg.Mode == "" {
		cfg.Mode = gin.ReleaseMode
	}
	gin.SetMode(cfg.Mode)

	srv := &Server{
		gin:   gin.New(),
		addr:  cfg.Addr,
		title: cfg.Title,
		store: store,
	}
	srv.mapHandlers()
	return srv, nil
}

func (srv *Server) mapHandlers() {
	srv.gin.Use(gin.Recovery(), requestLogger())

	srv.gin.GET("/", srv.page)
	srv.gin.GET("/api/plan", srv.planJSON)
	srv.gin.GET("/health", srv.healthCheck)
}

// Handler returns the router, for tests and embedding
func (srv *Server) Handler() http.Handler {
	return srv.gin
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (srv *Server) Run(ctx context.Context) error {
	httpSrv := &http.Server{
		Addr:              srv.addr,
		Handler:           srv.gin,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Serving plan", "addr", srv.addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to serve on %s: %w", srv.addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	logger.Info("Server stopped")
	return nil
}

// snapshot re-reads the persisted plan so edits made elsewhere show up
func (srv *Server) snapshot() models.Plan {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	srv.store.Reload()
	return srv.store.Snapshot()
}

func (srv *Server) page(c *gin.Context) {
	var buf bytes.Buffer
	opts := render.HTMLOptions{
		Title:     srv.title,
		AutoPrint: c.Query("print") == "1",
	}
	if err := render.HTML(&buf, srv.snapshot(), opts); err != nil {
		logger.Error("Failed to render page", "error", err)
		c.String(http.StatusInternalServerError, "failed to render plan")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

func (srv *Server) planJSON(c *gin.Context) {
	p := srv.snapshot()
	if p.Actions == nil {
		p.Actions = []models.Action{}
	}
	c.JSON(http.StatusOK, p)
}

func (srv *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": constants.AppName,
		"version": constants.Version,
	})
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
