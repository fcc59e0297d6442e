package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/api"
	"github.com/ngondzanamichael/LIFE-JDE-ANALYSIS/internal/config"
)

// Server is the HTTP presentation layer. All cleaning logic lives behind
// the API handler; the server owns no pipeline state.
type Server struct {
	router *gin.Engine
	api    *api.Handler
}

// NewServer creates the server.
func NewServer(cfg *config.AppConfig) *Server {
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router: gin.Default(),
		api:    api.NewHandler(cfg),
	}

	s.setupRoutes()

	return s
}

func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	group := s.router.Group("/api")
	{
		s.api.RegisterRoutes(group)
	}

	s.router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": "life-jde-analysis",
			"api":     "/api",
		})
	})

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// Run starts the server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Router exposes the gin engine (used by tests).
func (s *Server) Router() *gin.Engine {
	return s.router
}
