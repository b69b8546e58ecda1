package handlers

import (
	"errors"
	"net/http"

	"glimra/models"
	"glimra/services/wizard"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WizardHandler exposes the booking wizard over HTTP.
type WizardHandler struct {
	WizardSvc wizard.WizardService
	Logger    *zap.Logger
}

func NewWizardHandler(svc wizard.WizardService, logger *zap.Logger) *WizardHandler {
	return &WizardHandler{WizardSvc: svc, Logger: logger}
}

func (h *WizardHandler) respond(c *gin.Context, session *models.WizardSession, err error) {
	if err != nil {
		var wErr *wizard.WizardError
		if errors.As(err, &wErr) {
			status := http.StatusBadRequest
			switch wErr.Code {
			case "sessionError":
				status = http.StatusNotFound
			case "submissionInFlight":
				status = http.StatusConflict
			case "staleAvailability":
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"error": wErr.Message, "code": wErr.Code})
			return
		}
		h.Logger.Error("wizard operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// StartSession handles POST /api/wizard/session.
func (h *WizardHandler) StartSession(c *gin.Context) {
	userID := c.GetString("userID")
	session, err := h.WizardSvc.StartSession(c.Request.Context(), userID)
	h.respond(c, session, err)
}

// GetSession handles GET /api/wizard/session/:sessionID.
func (h *WizardHandler) GetSession(c *gin.Context) {
	session, err := h.WizardSvc.GetSession(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, session, err)
}

// CancelSession handles DELETE /api/wizard/session/:sessionID.
func (h *WizardHandler) CancelSession(c *gin.Context) {
	if err := h.WizardSvc.CancelSession(c.Request.Context(), c.Param("sessionID")); err != nil {
		h.respond(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "canceled"})
}

// SelectVehicle handles PUT /api/wizard/session/:sessionID/vehicle.
func (h *WizardHandler) SelectVehicle(c *gin.Context) {
	var body struct {
		VehicleID string `json:"vehicleId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	session, err := h.WizardSvc.SelectVehicle(c.Request.Context(), c.Param("sessionID"), body.VehicleID)
	h.respond(c, session, err)
}

// SelectService handles PUT /api/wizard/session/:sessionID/service.
func (h *WizardHandler) SelectService(c *gin.Context) {
	var body struct {
		ServiceTypeID string `json:"serviceTypeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	session, err := h.WizardSvc.SelectService(c.Request.Context(), c.Param("sessionID"), body.ServiceTypeID)
	h.respond(c, session, err)
}

// SelectValet handles PUT /api/wizard/session/:sessionID/valet.
func (h *WizardHandler) SelectValet(c *gin.Context) {
	var body struct {
		ValetTypeID string `json:"valetTypeId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	session, err := h.WizardSvc.SelectValet(c.Request.Context(), c.Param("sessionID"), body.ValetTypeID)
	h.respond(c, session, err)
}

// SelectAddress handles PUT /api/wizard/session/:sessionID/address.
func (h *WizardHandler) SelectAddress(c *gin.Context) {
	var body struct {
		AddressID string `json:"addressId" binding:"required"`
		BranchID  string `json:"branchId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	session, err := h.WizardSvc.SelectAddress(c.Request.Context(), c.Param("sessionID"), body.AddressID, body.BranchID)
	h.respond(c, session, err)
}

// SetInstructions handles PUT /api/wizard/session/:sessionID/instructions.
func (h *WizardHandler) SetInstructions(c *gin.Context) {
	var body struct {
		Instructions string `json:"instructions"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	session, err := h.WizardSvc.SetInstructions(c.Request.Context(), c.Param("sessionID"), body.Instructions)
	h.respond(c, session, err)
}

// SetExpressService handles PUT /api/wizard/session/:sessionID/express.
func (h *WizardHandler) SetExpressService(c *gin.Context) {
	var body struct {
		Express bool `json:"express"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	session, err := h.WizardSvc.SetExpressService(c.Request.Context(), c.Param("sessionID"), body.Express)
	h.respond(c, session, err)
}

// SelectDate handles PUT /api/wizard/session/:sessionID/date.
func (h *WizardHandler) SelectDate(c *gin.Context) {
	var body struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	session, err := h.WizardSvc.SelectDate(c.Request.Context(), c.Param("sessionID"), body.Date)
	h.respond(c, session, err)
}

// SelectSlot handles PUT /api/wizard/session/:sessionID/slot.
func (h *WizardHandler) SelectSlot(c *gin.Context) {
	var body struct {
		Start *int `json:"start" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	session, err := h.WizardSvc.SelectSlot(c.Request.Context(), c.Param("sessionID"), *body.Start)
	h.respond(c, session, err)
}

// OpenAddOns handles POST /api/wizard/session/:sessionID/addons/open.
func (h *WizardHandler) OpenAddOns(c *gin.Context) {
	session, err := h.WizardSvc.OpenAddOns(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, session, err)
}

// ConfirmAddOns handles POST /api/wizard/session/:sessionID/addons.
func (h *WizardHandler) ConfirmAddOns(c *gin.Context) {
	var body struct {
		AddOnIDs []string `json:"addOnIds"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	session, err := h.WizardSvc.ConfirmAddOns(c.Request.Context(), c.Param("sessionID"), body.AddOnIDs)
	h.respond(c, session, err)
}

// Next handles POST /api/wizard/session/:sessionID/next.
func (h *WizardHandler) Next(c *gin.Context) {
	session, err := h.WizardSvc.Next(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, session, err)
}

// Back handles POST /api/wizard/session/:sessionID/back.
func (h *WizardHandler) Back(c *gin.Context) {
	session, err := h.WizardSvc.Back(c.Request.Context(), c.Param("sessionID"))
	h.respond(c, session, err)
}

// GoToStep handles POST /api/wizard/session/:sessionID/step.
func (h *WizardHandler) GoToStep(c *gin.Context) {
	var body struct {
		Step *int `json:"step" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	session, err := h.WizardSvc.GoToStep(c.Request.Context(), c.Param("sessionID"), models.WizardStep(*body.Step))
	h.respond(c, session, err)
}

// Quote handles GET /api/wizard/session/:sessionID/quote.
func (h *WizardHandler) Quote(c *gin.Context) {
	breakdown, err := h.WizardSvc.Quote(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respond(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, breakdown)
}

// Slots handles GET /api/wizard/session/:sessionID/slots?date=YYYY-MM-DD.
func (h *WizardHandler) Slots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing date query parameter"})
		return
	}
	slots, err := h.WizardSvc.Slots(c.Request.Context(), c.Param("sessionID"), date)
	if err != nil {
		h.respond(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// Submit handles POST /api/wizard/session/:sessionID/submit.
func (h *WizardHandler) Submit(c *gin.Context) {
	ref, err := h.WizardSvc.Submit(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respond(c, nil, err)
		return
	}
	c.JSON(http.StatusOK, ref)
}
