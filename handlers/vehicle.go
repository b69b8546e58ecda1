package handlers

import (
	"net/http"
	"time"

	vehicleRepo "glimra/database/repository/vehicle"
	"glimra/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// VehicleHandler manages a user's registered vehicles.
type VehicleHandler struct {
	Vehicles vehicleRepo.VehicleRepository
	Logger   *zap.Logger
}

func NewVehicleHandler(repo vehicleRepo.VehicleRepository, logger *zap.Logger) *VehicleHandler {
	return &VehicleHandler{Vehicles: repo, Logger: logger}
}

// ListVehicles handles GET /api/vehicles.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.Vehicles.ListUserVehicles(c.GetString("userID"))
	if err != nil {
		h.Logger.Error("failed to list vehicles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list vehicles"})
		return
	}
	c.JSON(http.StatusOK, vehicles)
}

// CreateVehicle handles POST /api/vehicles.
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var body struct {
		PlateNumber string `json:"plateNumber" binding:"required"`
		Make        string `json:"make"`
		Model       string `json:"model"`
		IsSUV       bool   `json:"isSUV"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	vehicle := &models.Vehicle{
		ID:          uuid.New().String(),
		UserID:      c.GetString("userID"),
		PlateNumber: body.PlateNumber,
		Make:        body.Make,
		Model:       body.Model,
		IsSUV:       body.IsSUV,
		CreatedAt:   time.Now(),
	}
	if err := h.Vehicles.CreateVehicle(vehicle); err != nil {
		h.Logger.Error("failed to create vehicle", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create vehicle"})
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

// DeleteVehicle handles DELETE /api/vehicles/:vehicleID.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	if err := h.Vehicles.DeleteVehicle(c.Param("vehicleID"), c.GetString("userID")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "vehicle not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
