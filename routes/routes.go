package routes

import (
	"net/http"
	"time"

	"citizenhub/handlers"
	"citizenhub/metrics"
	"citizenhub/middleware"
	"citizenhub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterServiceRoutes registers the public directory and evaluation endpoints.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.Services.ListServices)
		api.GET("/categories", hb.Services.Categories)
		api.GET("/:idOrSlug", hb.Services.GetService)
		api.GET("/:idOrSlug/faqs", hb.Services.FAQs)
		api.GET("/:idOrSlug/status/:code", hb.Services.StatusInfo)
		api.GET("/:idOrSlug/reviews", hb.Reviews.ListReviews)

		// A valid token lets the stored profile fill gaps in the request body.
		evaluate := api.Group("")
		evaluate.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.Sessions, true))
		evaluate.POST("/:idOrSlug/check-eligibility", hb.Services.CheckEligibility)
		evaluate.POST("/:idOrSlug/calculate-fees", hb.Services.CalculateFees)
		evaluate.POST("/:idOrSlug/validate-documents", hb.Services.ValidateDocuments)

		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.Sessions, false))
		protected.POST("/:idOrSlug/reviews", hb.Reviews.CreateReview)
	}
}

// RegisterUserRoutes registers user endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.POST("/register", hb.Users.RegisterHandler)
		api.POST("/login", hb.Users.LoginHandler)

		// Protected routes (Require Authentication)
		protected := api.Group("")
		protected.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.Sessions, false))
		protected.GET("/me", hb.Users.MeHandler)
		protected.PUT("/me/profile", hb.Users.UpdateProfileHandler)
		protected.DELETE("/logout", hb.Users.LogoutHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	adminGroup := r.Group("/api/admin")
	{
		adminGroup.Use(middleware.JWTAuthUserMiddleware(hb.UserRepo, hb.Sessions, false), middleware.RequireAdmin())
		adminGroup.GET("/services", hb.Admin.ListServices)
		adminGroup.POST("/services", hb.Admin.CreateService)
		adminGroup.POST("/services/batch-status", hb.Admin.BatchStatus)
		adminGroup.GET("/services/:idOrSlug", hb.Admin.GetService)
		adminGroup.PATCH("/services/:idOrSlug", hb.Admin.UpdateService)
		adminGroup.PUT("/services/:idOrSlug/status", hb.Admin.ChangeStatus)
		adminGroup.DELETE("/services/:idOrSlug", hb.Admin.DeprecateService)
		adminGroup.DELETE("/services/:idOrSlug/permanent", hb.Admin.PermanentlyDelete)
		adminGroup.GET("/users", hb.Admin.ListUsers)
	}
}

// RegisterOpsRoutes registers the health check and the Prometheus endpoint.
func RegisterOpsRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		code := http.StatusOK
		if !status.Healthy() {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{"status": http.StatusText(code), "dependencies": status})
	})
	r.GET("/metrics", metrics.Exposer())
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Accept-Language", handlers.ConfirmDeleteHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(metrics.Handler())

	RegisterServiceRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterOpsRoutes(r)
}
