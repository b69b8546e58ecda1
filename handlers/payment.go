package handlers

import (
	"context"
	"errors"
	"net/http"

	"glimra/services/payment"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the payment confirmation protocol over HTTP.
type PaymentHandler struct {
	PaymentSvc payment.PaymentService
	Logger     *zap.Logger
}

func NewPaymentHandler(svc payment.PaymentService, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{PaymentSvc: svc, Logger: logger}
}

func (h *PaymentHandler) writeErr(c *gin.Context, err error) {
	var pErr *payment.PaymentError
	if errors.As(err, &pErr) {
		status := http.StatusBadRequest
		if pErr.Code == "confirmationInFlight" {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"error": pErr.Message, "code": pErr.Code})
		return
	}
	h.Logger.Error("payment operation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// Initiate handles POST /api/payments. It creates the provider intent and
// returns the client secret the app presents in its payment sheet.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var body struct {
		PurchaseKey string  `json:"purchaseKey" binding:"required"`
		Kind        string  `json:"kind" binding:"required"`
		Amount      float64 `json:"amount"`
		Currency    string  `json:"currency"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	attempt, err := h.PaymentSvc.Initiate(c.Request.Context(), payment.InitiateRequest{
		UserID:      c.GetString("userID"),
		PurchaseKey: body.PurchaseKey,
		Kind:        body.Kind,
		Amount:      body.Amount,
		Currency:    body.Currency,
	})
	if err != nil {
		h.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// ReportPresentation handles POST /api/payments/:attemptID/presented. The
// device reports how the payment sheet was dismissed.
func (h *PaymentHandler) ReportPresentation(c *gin.Context) {
	var body struct {
		Outcome string `json:"outcome" binding:"required"`
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	attempt, err := h.PaymentSvc.ReportPresentation(c.Request.Context(), c.Param("attemptID"),
		payment.PresentationOutcome(body.Outcome), body.Message)
	if err != nil {
		h.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// Confirm handles POST /api/payments/:attemptID/confirm. It blocks until the
// attempt reaches a terminal status or the bounded wait elapses. Closing the
// connection cancels the polling run.
func (h *PaymentHandler) Confirm(c *gin.Context) {
	handle, err := h.PaymentSvc.StartConfirmation(c.Request.Context(), c.Param("attemptID"))
	if err != nil {
		h.writeErr(c, err)
		return
	}

	result := handle.Wait()
	if result.Aborted {
		c.JSON(http.StatusRequestTimeout, gin.H{"status": "aborted"})
		return
	}

	attempt, err := h.PaymentSvc.GetAttempt(context.Background(), c.Param("attemptID"))
	if err != nil {
		h.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": result.Status, "attempt": attempt})
}

// GetAttempt handles GET /api/payments/:attemptID.
func (h *PaymentHandler) GetAttempt(c *gin.Context) {
	attempt, err := h.PaymentSvc.GetAttempt(c.Request.Context(), c.Param("attemptID"))
	if err != nil {
		h.writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}
