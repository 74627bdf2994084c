package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stocksmart/backend/internal/model"
	"github.com/stocksmart/backend/internal/service"
)

type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// List godoc
// @Summary List products
// @Description Pass lowStock=true to list only products at or below their threshold.
// @Tags products
// @Produce json
// @Param lowStock query bool false "Only low-stock products"
// @Success 200 {array} model.Product
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/products [get]
func (h *ProductHandler) List(c *gin.Context) {
	var (
		products []model.Product
		err      error
	)
	if c.Query("lowStock") == "true" {
		products, err = h.svc.GetLowStock(c.Request.Context())
	} else {
		products, err = h.svc.GetAll(c.Request.Context())
	}
	if err != nil {
		writeServerError(c)
		return
	}

	c.JSON(http.StatusOK, products)
}

// Get godoc
// @Summary Get a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	product, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		writeProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param request body model.CreateProductRequest true "Product"
// @Security BearerAuth
// @Success 201 {object} model.Product
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	product := &model.Product{
		Name:              req.Name,
		SKU:               req.SKU,
		Category:          req.Category,
		SupplierID:        req.SupplierID,
		Quantity:          req.Quantity,
		UnitPrice:         req.UnitPrice,
		LowStockThreshold: req.LowStockThreshold,
	}

	if err := h.svc.Add(c.Request.Context(), product); err != nil {
		writeServerError(c)
		return
	}

	c.JSON(http.StatusCreated, product)
}

// Update godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body model.UpdateProductRequest true "Product"
// @Security BearerAuth
// @Success 200 {object} model.Product
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	product := &model.Product{
		ID:                id,
		Name:              req.Name,
		SKU:               req.SKU,
		Category:          req.Category,
		SupplierID:        req.SupplierID,
		Quantity:          req.Quantity,
		UnitPrice:         req.UnitPrice,
		LowStockThreshold: req.LowStockThreshold,
	}

	if err := h.svc.Update(c.Request.Context(), product); err != nil {
		writeProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, product)
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Security BearerAuth
// @Success 204 {string} string ""
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/v1/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		writeProductError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func writeProductError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrProductNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	writeServerError(c)
}
