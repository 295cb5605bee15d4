package status

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
)

// Readiness is the view of the bot's lifecycle exposed over HTTP.
type Readiness interface {
	Booted() bool
	Synced() bool
	OK() bool
	Extensions() map[string]bool
}

type readyResponse struct {
	Ready      bool            `json:"ready"`
	Booted     bool            `json:"booted"`
	Synced     bool            `json:"synced"`
	Extensions map[string]bool `json:"extensions"`
	Version    string          `json:"version"`
}

// NewRouter builds the gin engine serving /healthz and /ready.
func NewRouter(r Readiness, version string, log *slog.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), loggingMiddleware(log))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	engine.GET("/ready", func(c *gin.Context) {
		resp := readyResponse{
			Ready:      r.OK(),
			Booted:     r.Booted(),
			Synced:     r.Synced(),
			Extensions: r.Extensions(),
			Version:    version,
		}
		code := http.StatusOK
		if !resp.Ready {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, resp)
	})

	return engine
}

func loggingMiddleware(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug(
			fmt.Sprintf("%s %s finished", c.Request.Method, c.Request.URL.Path),
			"duration", time.Since(start),
			slog.Group(
				"response",
				"status_code", c.Writer.Status(),
				"body_size", c.Writer.Size(),
			),
		)
	}
}

type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

func NewServer(addr string, r Readiness, version string, log *slog.Logger) *Server {
	log = log.With("logger", "status")
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(r, version, log),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		log: log,
	}
}

// Start serves in the background until Shutdown.
func (s *Server) Start() {
	go func() {
		s.log.Info("✅ status API listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("❌ status API stopped", tint.Err(err))
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
