package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"

	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/api/responses"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/chain"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/config"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/fetch"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/filestore"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/pkg/models"
)

// endpointCatalog backs the GET / listing: the five demo endpoints, in the
// order the assignment presents them.
var endpointCatalog = []responses.Endpoint{
	{Path: "/callback", Description: "Fetches the user after a 1 second delay using a callback"},
	{Path: "/promise", Description: "Fetches the user after a 1 second delay using a promise-style future (10% simulated failure)"},
	{Path: "/async", Description: "Fetches the user after a 1 second delay using async/await style blocking (10% simulated failure)"},
	{Path: "/file", Description: "Writes the user to a text file and reads it back"},
	{Path: "/chain", Description: "Runs the login -> fetch_data -> render pipeline sequentially"},
}

// availableEndpoints is the exact path list the 404 envelope advertises.
var availableEndpoints = []string{"/", "/callback", "/promise", "/async", "/file", "/chain"}

// Server is the lab's HTTP server with its demo services injected.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
	cfg        *config.Config
	user       models.UserRecord
	fetcher    *fetch.Fetcher
	files      *filestore.Store
	pipeline   *chain.Pipeline
}

// NewServer wires middleware, routes, and the underlying http.Server.
func NewServer(
	logger *zap.Logger,
	cfg *config.Config,
	fetcher *fetch.Fetcher,
	files *filestore.Store,
	pipeline *chain.Pipeline,
) *Server {
	server := &Server{
		logger:   logger,
		cfg:      cfg,
		user:     cfg.UserRecord(),
		fetcher:  fetcher,
		files:    files,
		pipeline: pipeline,
	}

	router := gin.New()

	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.CustomRecoveryWithZap(logger, true, server.recovered))
	router.Use(otelgin.Middleware("lab2-api"))
	router.Use(requestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	server.router = router
	server.registerRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return server
}

// registerRoutes maps the lab endpoints plus the infrastructure routes.
func (s *Server) registerRoutes() {
	// Demo endpoints
	s.router.GET("/", s.index)
	s.router.GET("/callback", s.callbackDemo)
	s.router.GET("/promise", s.promiseDemo)
	s.router.GET("/async", s.asyncDemo)
	s.router.GET("/file", s.fileDemo)
	s.router.GET("/chain", s.chainDemo)

	// Infrastructure
	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Static assets, then the 404 envelope
	s.router.NoRoute(s.noRoute)
}

// Start begins serving and blocks until the listener closes.
func (s *Server) Start() error {
	s.logger.Info("Starting API server", zap.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.httpServer.Shutdown(ctx)
}

// Router returns the internal Gin engine for testing purposes
func (s *Server) Router() *gin.Engine {
	return s.router
}

// GET /
func (s *Server) index(c *gin.Context) {
	c.JSON(http.StatusOK, responses.IndexResponse{
		Message:      "CPAN 212 - Lab 2: callbacks, promises, async/await, file I/O, and chained operations",
		Author:       "Maryan Farah",
		Endpoints:    endpointCatalog,
		Instructions: "Send a GET request to any endpoint below to run its demo",
	})
}

// GET /health
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

// noRoute serves static files from the public directory and falls back to
// the 404 envelope for anything else.
func (s *Server) noRoute(c *gin.Context) {
	if c.Request.Method == http.MethodGet {
		// Clean with a leading slash so ".." cannot escape the public dir.
		rel := filepath.Clean("/" + c.Request.URL.Path)
		full := filepath.Join(s.cfg.Files.PublicDir, rel)
		if info, err := os.Stat(full); err == nil && !info.IsDir() {
			c.File(full)
			return
		}
	}
	responses.NotFound(c,
		fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path),
		availableEndpoints)
}

// recovered turns a handler panic into the standard 500 envelope. The panic
// itself is already logged with its stack by the recovery middleware.
func (s *Server) recovered(c *gin.Context, err any) {
	responses.InternalError(c, fmt.Sprintf("unexpected error: %v", err))
}

// writeError logs a handler failure and sends the 500 envelope.
func (s *Server) writeError(c *gin.Context, err error) {
	s.logger.Error("demo endpoint failed",
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", c.GetString("request_id")),
		zap.Error(err))
	responses.InternalError(c, err.Error())
}

// requestID tags every request with an X-Request-ID, honoring one supplied
// by the client.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}
