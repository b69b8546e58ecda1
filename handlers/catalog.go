package handlers

import (
	"net/http"

	catalogRepo "glimra/database/repository/catalog"
	"glimra/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the read-only service catalog.
type CatalogHandler struct {
	Catalog catalogRepo.CatalogRepository
}

func NewCatalogHandler(repo catalogRepo.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{Catalog: repo}
}

// ListServiceTypes handles GET /api/catalog/services.
func (h *CatalogHandler) ListServiceTypes(c *gin.Context) {
	services, err := h.Catalog.ListServiceTypes()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch service types", err.Error())
		return
	}
	c.JSON(http.StatusOK, services)
}

// ListValetTypes handles GET /api/catalog/valets.
func (h *CatalogHandler) ListValetTypes(c *gin.Context) {
	valets, err := h.Catalog.ListValetTypes()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch valet types", err.Error())
		return
	}
	c.JSON(http.StatusOK, valets)
}

// ListAddOns handles GET /api/catalog/addons.
func (h *CatalogHandler) ListAddOns(c *gin.Context) {
	addons, err := h.Catalog.ListAddOns()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch add-ons", err.Error())
		return
	}
	c.JSON(http.StatusOK, addons)
}

// ListSubscriptionPlans handles GET /api/catalog/plans.
func (h *CatalogHandler) ListSubscriptionPlans(c *gin.Context) {
	plans, err := h.Catalog.ListSubscriptionPlans()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch subscription plans", err.Error())
		return
	}
	c.JSON(http.StatusOK, plans)
}
