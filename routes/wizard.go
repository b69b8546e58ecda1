package routes

import (
	"glimra/handlers"
	"glimra/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterWizardRoutes sets up the endpoints for the booking wizard.
func RegisterWizardRoutes(r *gin.Engine, h *handlers.WizardHandler) {
	api := r.Group("/api/wizard")
	{
		api.Use(middleware.JWTAuthUserMiddleware())

		api.POST("/session", h.StartSession)
		api.GET("/session/:sessionID", h.GetSession)
		api.DELETE("/session/:sessionID", h.CancelSession)

		api.PUT("/session/:sessionID/vehicle", h.SelectVehicle)
		api.PUT("/session/:sessionID/service", h.SelectService)
		api.PUT("/session/:sessionID/valet", h.SelectValet)
		api.PUT("/session/:sessionID/address", h.SelectAddress)
		api.PUT("/session/:sessionID/instructions", h.SetInstructions)
		api.PUT("/session/:sessionID/express", h.SetExpressService)
		api.PUT("/session/:sessionID/date", h.SelectDate)
		api.PUT("/session/:sessionID/slot", h.SelectSlot)

		api.POST("/session/:sessionID/addons/open", h.OpenAddOns)
		api.POST("/session/:sessionID/addons", h.ConfirmAddOns)

		api.POST("/session/:sessionID/next", h.Next)
		api.POST("/session/:sessionID/back", h.Back)
		api.POST("/session/:sessionID/step", h.GoToStep)

		api.GET("/session/:sessionID/quote", h.Quote)
		api.GET("/session/:sessionID/slots", h.Slots)
		api.POST("/session/:sessionID/submit", h.Submit)
	}
}
