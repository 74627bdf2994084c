package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stocksmart/backend/internal/model"
	"github.com/stocksmart/backend/internal/service"
)

type AlertHandler struct {
	svc *service.AlertService
}

func NewAlertHandler(svc *service.AlertService) *AlertHandler {
	return &AlertHandler{svc: svc}
}

// List godoc
// @Summary List inventory alerts
// @Description Unresolved alerts only, unless includeResolved=true.
// @Tags alerts
// @Produce json
// @Param includeResolved query bool false "Include resolved alerts"
// @Security BearerAuth
// @Success 200 {array} model.InventoryAlert
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/alerts [get]
func (h *AlertHandler) List(c *gin.Context) {
	alerts, err := h.svc.List(c.Request.Context(), c.Query("includeResolved") == "true")
	if err != nil {
		writeServerError(c)
		return
	}

	c.JSON(http.StatusOK, alerts)
}

// Resolve godoc
// @Summary Resolve an inventory alert
// @Tags alerts
// @Accept json
// @Produce json
// @Param id path string true "Alert ID"
// @Param request body model.ResolveAlertRequest true "Resolver"
// @Security BearerAuth
// @Success 200 {object} model.InventoryAlert
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/alerts/{id}/resolve [post]
func (h *AlertHandler) Resolve(c *gin.Context) {
	var req model.ResolveAlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	alert, err := h.svc.Resolve(c.Request.Context(), c.Param("id"), req.ResolvedBy)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlertNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "alert not found"})
		case errors.Is(err, service.ErrAlertAlreadyResolved):
			c.JSON(http.StatusConflict, gin.H{"error": "alert already resolved"})
		default:
			writeServerError(c)
		}
		return
	}

	c.JSON(http.StatusOK, alert)
}
