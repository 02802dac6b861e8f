package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"crm-api/controllers"
	"crm-api/middleware"
	"crm-api/services"
)

// Handlers bundles everything SetupRoutes mounts. DB is optional; when set the
// health check pings it.
type Handlers struct {
	AuthService   *services.AuthService
	Auth          *controllers.AuthController
	Enquiries     *controllers.EnquiryController
	Notifications *controllers.NotificationController
	Directory     *controllers.DirectoryController
	DB            *gorm.DB
}

func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Public routes
		public := v1.Group("")
		{
			public.POST("/register", h.Auth.Register)
			public.POST("/login", h.Auth.Login)
			public.GET("/health", healthCheck(h.DB))
		}

		// Protected routes (require authentication)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(h.AuthService))
		{
			// User profile
			protected.GET("/profile", h.Auth.GetProfile)
			protected.PUT("/change-password", h.Auth.ChangePassword)

			enquiries := protected.Group("/enquiries")
			{
				enquiries.GET("", h.Enquiries.List)
				enquiries.POST("", h.Enquiries.Create)
				enquiries.GET("/follow-ups", h.Enquiries.FollowUps)
				enquiries.GET("/:id", h.Enquiries.Get)
				enquiries.PUT("/:id", h.Enquiries.Update)
				enquiries.PATCH("/:id", h.Enquiries.Update)
				enquiries.DELETE("/:id", h.Enquiries.Delete)
			}

			notifications := protected.Group("/notifications")
			{
				notifications.GET("", h.Notifications.ListNotifications)
				notifications.GET("/unread-count", h.Notifications.GetUnreadCount)
				notifications.PATCH("/read-all", h.Notifications.MarkAllAsRead)
				notifications.PATCH("/:id/read", h.Notifications.MarkAsRead)
				notifications.DELETE("/:id", h.Notifications.DeleteNotification)
			}

			companies := protected.Group("/companies")
			{
				companies.GET("", h.Directory.ListCompanies)
				companies.POST("", h.Directory.CreateCompany)
				companies.GET("/:id", h.Directory.GetCompany)
				companies.PUT("/:id", h.Directory.UpdateCompany)
				companies.DELETE("/:id", h.Directory.DeleteCompany)
			}

			leadSources := protected.Group("/lead-sources")
			{
				leadSources.GET("", h.Directory.ListLeadSources)
				leadSources.POST("", h.Directory.CreateLeadSource)
				leadSources.GET("/:id", h.Directory.GetLeadSource)
				leadSources.PUT("/:id", h.Directory.UpdateLeadSource)
				leadSources.DELETE("/:id", h.Directory.DeleteLeadSource)
			}

			staff := protected.Group("/staff")
			{
				staff.GET("", h.Directory.ListStaff)
				staff.POST("", h.Directory.CreateStaff)
				staff.GET("/:id", h.Directory.GetStaff)
				staff.PUT("/:id", h.Directory.UpdateStaff)
				staff.DELETE("/:id", h.Directory.DeleteStaff)
			}
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Route not found"})
	})
}

func healthCheck(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status":  "degraded",
					"message": "Database unreachable",
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "CRM API is running",
		})
	}
}
