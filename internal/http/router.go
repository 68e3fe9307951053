package http

import (
	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(SecurityHeadersMiddleware())

	if cfg.ReadOnly != nil && cfg.ReadOnly.IsEnabled() {
		router.Use(cfg.ReadOnly.Handler())
	}

	router.HandleMethodNotAllowed = true
	router.NoRoute(notFoundHandler)
	router.NoMethod(methodNotAllowedHandler)

	// A nil *audit.Service must not become a non-nil interface.
	var auditor BookAuditor
	if cfg.AuditService != nil {
		auditor = cfg.AuditService
	}
	var counter BookCounter
	if cfg.Catalog != nil {
		counter = cfg.Catalog
	}

	health := NewHealthController(cfg.Database, counter, cfg.Version)
	books := NewBooksController(cfg.Catalog, auditor)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)

	// Catalog endpoints
	router.POST("/books", books.AddBook)
	router.GET("/books", books.GetAllBooks)
	router.GET("/books/:bookId", books.GetBook)
	router.PUT("/books/:bookId", books.UpdateBook)
	router.DELETE("/books/:bookId", books.DeleteBook)

	// Audit trail endpoints
	if cfg.AuditService != nil {
		auditController := NewAuditController(cfg.AuditService)
		router.GET("/api/audit", auditController.GetAuditEvents)
		router.GET("/api/audit/books/:bookId", auditController.GetBookHistory)
	}

	return router
}
