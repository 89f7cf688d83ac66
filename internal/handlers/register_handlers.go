package handlers

import (
	"invoice-reconciler/cmd/docs"
	"invoice-reconciler/internal/core/domain"
	portssvc "invoice-reconciler/internal/core/ports/services"
	"invoice-reconciler/internal/middleware"
	"invoice-reconciler/internal/platform/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
	memorystore "github.com/ulule/limiter/v3/drivers/store/memory"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	// The frontend is served from a separate origin in development.
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{cfg.FrontendBaseURL},
		AllowMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
	}))

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	uploadLimiter, err := buildUploadLimiter(cfg)
	if err != nil {
		return err
	}

	// Setup API routes, passing service interfaces
	api := r.Group("/api")
	RegisterInvoiceRoutes(api, services.Invoice, uploadLimiter)
	registerSettingsRoutes(api, services.Settings)
	RegisterXeroRoutes(api, services.Xero, cfg)
	registerDashboardRoutes(api, services.Reporting)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)

	return nil
}

// buildUploadLimiter builds the per-IP rate limiter guarding the upload
// endpoint. The limit format follows ulule/limiter notation ("20-M").
func buildUploadLimiter(cfg *config.Config) (gin.HandlerFunc, error) {
	rate, err := limiter.NewRateFromFormatted(cfg.UploadRateLimit)
	if err != nil {
		return nil, err
	}
	store := memorystore.NewStore()
	return middleware.RateLimit(limiter.New(store, rate)), nil
}

// init registers the binding tags used by request DTOs.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("invoicestatus", func(fl validator.FieldLevel) bool {
			return domain.InvoiceStatus(fl.Field().String()).IsValid()
		})
	}
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
