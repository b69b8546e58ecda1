package routes

import (
	"net/http"

	"glimra/handlers"
	"glimra/middleware"
	"glimra/utils"

	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes registers the read-only catalog endpoints.
func RegisterCatalogRoutes(r *gin.Engine, h *handlers.CatalogHandler) {
	api := r.Group("/api/catalog")
	{
		api.GET("/services", h.ListServiceTypes)
		api.GET("/valets", h.ListValetTypes)
		api.GET("/addons", h.ListAddOns)
		api.GET("/plans", h.ListSubscriptionPlans)
	}
}

// RegisterVehicleRoutes registers vehicle management endpoints.
func RegisterVehicleRoutes(r *gin.Engine, h *handlers.VehicleHandler) {
	api := r.Group("/api/vehicles")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", h.ListVehicles)
		api.POST("", h.CreateVehicle)
		api.DELETE("/:vehicleID", h.DeleteVehicle)
	}
}

// RegisterBookingRoutes registers endpoints for submitted bookings.
func RegisterBookingRoutes(r *gin.Engine, h *handlers.BookingHandler) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("", h.ListBookings)
		api.GET("/:bookingID", h.GetBooking)
		api.POST("/:bookingID/cancel", h.CancelBooking)
	}
}

// RegisterPaymentRoutes registers the payment confirmation endpoints.
func RegisterPaymentRoutes(r *gin.Engine, h *handlers.PaymentHandler) {
	api := r.Group("/api/payments")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", h.Initiate)
		api.GET("/:attemptID", h.GetAttempt)
		api.POST("/:attemptID/presented", h.ReportPresentation)
		api.POST("/:attemptID/confirm", h.Confirm)
	}
}

// RegisterFleetRoutes registers branch, admin and subscription endpoints.
func RegisterFleetRoutes(r *gin.Engine, h *handlers.FleetHandler) {
	api := r.Group("/api/fleet")
	{
		api.GET("/branches", h.ListBranches)
		api.POST("/admins/login", h.AdminLogin)

		user := api.Group("")
		user.Use(middleware.JWTAuthUserMiddleware())
		user.POST("/subscriptions", h.Subscribe)
		user.POST("/subscriptions/activate", h.ActivateSubscription)
		user.POST("/subscriptions/cancel", h.CancelSubscription)

		admin := api.Group("")
		admin.Use(middleware.JWTAuthAdminMiddleware())
		admin.POST("/branches", h.CreateBranch)
		admin.PATCH("/branches/:branchID", h.UpdateBranch)
		admin.DELETE("/branches/:branchID", h.DeactivateBranch)
		admin.GET("/branches/:branchID/admins", h.ListBranchAdmins)
		admin.POST("/admins", h.RegisterAdmin)
		admin.DELETE("/admins/:adminID", h.RemoveAdmin)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}
