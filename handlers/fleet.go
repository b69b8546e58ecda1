package handlers

import (
	"net/http"

	"glimra/models"
	"glimra/services/fleet"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FleetHandler manages branches, branch admins and fleet subscriptions.
type FleetHandler struct {
	FleetSvc fleet.FleetService
	Logger   *zap.Logger
}

func NewFleetHandler(svc fleet.FleetService, logger *zap.Logger) *FleetHandler {
	return &FleetHandler{FleetSvc: svc, Logger: logger}
}

// ListBranches handles GET /api/fleet/branches.
func (h *FleetHandler) ListBranches(c *gin.Context) {
	branches, err := h.FleetSvc.ListBranches()
	if err != nil {
		h.Logger.Error("failed to list branches", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list branches"})
		return
	}
	c.JSON(http.StatusOK, branches)
}

// CreateBranch handles POST /api/fleet/branches (admin).
func (h *FleetHandler) CreateBranch(c *gin.Context) {
	var body models.Branch
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	branch, err := h.FleetSvc.CreateBranch(body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, branch)
}

// UpdateBranch handles PATCH /api/fleet/branches/:branchID (admin).
func (h *FleetHandler) UpdateBranch(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if err := h.FleetSvc.UpdateBranch(c.Param("branchID"), fields); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// DeactivateBranch handles DELETE /api/fleet/branches/:branchID (admin).
func (h *FleetHandler) DeactivateBranch(c *gin.Context) {
	if err := h.FleetSvc.DeactivateBranch(c.Param("branchID")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// RegisterAdmin handles POST /api/fleet/admins (admin).
func (h *FleetHandler) RegisterAdmin(c *gin.Context) {
	var body struct {
		BranchID string `json:"branchId" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	admin, err := h.FleetSvc.RegisterAdmin(body.BranchID, body.Name, body.Email, body.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, admin)
}

// AdminLogin handles POST /api/fleet/admins/login.
func (h *FleetHandler) AdminLogin(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	token, admin, err := h.FleetSvc.AuthenticateAdmin(body.Email, body.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "admin": admin})
}

// ListBranchAdmins handles GET /api/fleet/branches/:branchID/admins (admin).
func (h *FleetHandler) ListBranchAdmins(c *gin.Context) {
	admins, err := h.FleetSvc.ListBranchAdmins(c.Param("branchID"))
	if err != nil {
		h.Logger.Error("failed to list branch admins", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list branch admins"})
		return
	}
	c.JSON(http.StatusOK, admins)
}

// RemoveAdmin handles DELETE /api/fleet/admins/:adminID (admin).
func (h *FleetHandler) RemoveAdmin(c *gin.Context) {
	if err := h.FleetSvc.RemoveAdmin(c.Param("adminID")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// Subscribe handles POST /api/fleet/subscriptions.
func (h *FleetHandler) Subscribe(c *gin.Context) {
	var body struct {
		PlanID string `json:"planId" binding:"required"`
		Trial  bool   `json:"trial"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	sub, attempt, err := h.FleetSvc.Subscribe(c.GetString("userID"), body.PlanID, body.Trial)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"subscription": sub, "attempt": attempt})
}

// ActivateSubscription handles POST /api/fleet/subscriptions/activate. Called
// after the payment confirmation wait returns.
func (h *FleetHandler) ActivateSubscription(c *gin.Context) {
	sub, err := h.FleetSvc.ActivateSubscription(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sub)
}

// CancelSubscription handles POST /api/fleet/subscriptions/cancel.
func (h *FleetHandler) CancelSubscription(c *gin.Context) {
	if err := h.FleetSvc.CancelSubscription(c.GetString("userID")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "canceled"})
}
