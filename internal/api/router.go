package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/medisupply/product-import/internal/config"
	"github.com/medisupply/product-import/internal/service"
)

// Service names reported by the health endpoints
const (
	ImporterServiceName = "product-importer"
	CatalogServiceName  = "product-catalog"
)

// HealthChecker reports whether a dependency is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// NewImportRouter creates the router of the import API
func NewImportRouter(services *service.Services, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	router := newEngine(log)

	importHandler := NewImportHandler(services, cfg, log)

	// Health check
	router.GET("/health", healthCheck(ImporterServiceName, nil))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1
	v1 := router.Group("/v1")
	{
		imports := v1.Group("/imports")
		{
			imports.POST("", importHandler.CreateImport)
			imports.GET("/template", importHandler.DownloadTemplate)
		}
	}

	return router
}

// NewCatalogRouter creates the router of the catalog API. db may be nil when
// no database health check is wanted.
func NewCatalogRouter(services *service.Services, db HealthChecker, log zerolog.Logger) *gin.Engine {
	router := newEngine(log)

	productHandler := NewProductHandler(services, log)
	providerHandler := NewProviderHandler(services, log)

	router.GET("/health", healthCheck(CatalogServiceName, db))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	products := router.Group("/products")
	{
		products.POST("", productHandler.Create)
		products.GET("", productHandler.List)
		products.GET("/:id", productHandler.Get)
	}
	router.POST("/products-batch", productHandler.CreateBulk)

	providers := router.Group("/providers")
	{
		providers.POST("", providerHandler.Create)
		providers.GET("", providerHandler.List)
		providers.GET("/:id", providerHandler.Get)
	}

	return router
}

func newEngine(log zerolog.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	return router
}

// healthCheck returns the health status
func healthCheck(name string, db HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		body := gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   name,
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.HealthCheck(ctx); err != nil {
				body["status"] = "unhealthy"
				body["database"] = err.Error()
				c.JSON(http.StatusServiceUnavailable, body)
				return
			}
			body["database"] = "ok"
		}

		c.JSON(http.StatusOK, body)
	}
}
