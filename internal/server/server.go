package server

import (
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"workorders/internal/api"
	"workorders/internal/config"
	"workorders/internal/model"
	"workorders/internal/store"
)

// Server is the HTTP server.
type Server struct {
	router    *gin.Engine
	store     *store.Store
	api       *api.Handler
	staticDir string
}

// NewServer creates the server and wires the store and API onto it.
func NewServer(cfg *config.AppConfig) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		dataDir = cfg.Data.DataDir
	}

	st, err := store.New(
		filepath.Join(dataDir, "uploads"),
		filepath.Join(dataDir, "workorders.db"),
	)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	properties := model.NewPropertyDirectory(cfg.Properties)
	handler := api.NewHandler(st, properties, filepath.Join(dataDir, "reports"))

	s := &Server{
		router:    gin.Default(),
		store:     st,
		api:       handler,
		staticDir: filepath.Join(dataDir, "static"),
	}

	s.setupRoutes(devMode)

	return s
}

func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.api.RegisterRoutes(apiGroup)
	}

	if devMode {
		// Dev mode proxies page loads to the front-end dev server.
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	s.router.Static("/static", s.staticDir)

	index := filepath.Join(s.staticDir, "index.html")
	serveIndex := func(c *gin.Context) {
		if _, err := os.Stat(index); err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.File(index)
	}
	s.router.GET("/", serveIndex)
	s.router.NoRoute(serveIndex)
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Close releases the store.
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore exposes the store for tests.
func (s *Server) GetStore() *store.Store {
	return s.store
}
