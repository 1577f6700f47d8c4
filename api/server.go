// Package api - Thin HTTP layer over the ordering core.
// The API is ONLY responsible for: input ingestion, core orchestration,
// output serialization. It NEVER performs pricing or admission logic.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cloud-portal/core/admission"
)

// Server is the portal API server
type Server struct {
	engine     *gin.Engine
	controller *admission.Controller
	auth       Authenticator
	version    string
}

// NewServer creates the API server around an admission controller
func NewServer(controller *admission.Controller, auth Authenticator, version string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(RequestID(), RequestLogger(), gin.Recovery())

	s := &Server{
		engine:     engine,
		controller: controller,
		auth:       auth,
		version:    version,
	}

	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	root := s.engine.Group("/api")

	// Public endpoints
	root.GET("/health", s.handleHealth)
	root.GET("/version", s.handleVersion)
	root.GET("/tariffs", s.handleTariffs)
	root.GET("/status", s.handleStatus)
	root.POST("/quote", s.handleQuote)

	// Authenticated endpoints
	authed := root.Group("", RequireUser(s.auth))
	authed.POST("/orders", s.handleSubmitOrder)
	authed.GET("/orders", s.handleListOrders)
	authed.DELETE("/orders/:id", s.handleCancelOrder)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
