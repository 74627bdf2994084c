package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stocksmart/backend/internal/model"
	"github.com/stocksmart/backend/internal/service"
)

type SupplierHandler struct {
	svc *service.SupplierService
}

func NewSupplierHandler(svc *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{svc: svc}
}

// List godoc
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Success 200 {array} model.Supplier
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/suppliers [get]
func (h *SupplierHandler) List(c *gin.Context) {
	suppliers, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		writeServerError(c)
		return
	}

	c.JSON(http.StatusOK, suppliers)
}

// Get godoc
// @Summary Get a supplier
// @Tags suppliers
// @Produce json
// @Param id path int true "Supplier ID"
// @Success 200 {object} model.Supplier
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/suppliers/{id} [get]
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	supplier, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "supplier not found"})
			return
		}
		writeServerError(c)
		return
	}

	c.JSON(http.StatusOK, supplier)
}

// Create godoc
// @Summary Create a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Param request body model.CreateSupplierRequest true "Supplier"
// @Security BearerAuth
// @Success 201 {object} model.Supplier
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/suppliers [post]
func (h *SupplierHandler) Create(c *gin.Context) {
	var req model.CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	supplier := &model.Supplier{
		Name:         req.Name,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
	}

	if err := h.svc.Add(c.Request.Context(), supplier); err != nil {
		writeServerError(c)
		return
	}

	c.JSON(http.StatusCreated, supplier)
}
