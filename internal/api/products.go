package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

// pathID parses the :id route parameter, answering 400 on failure
func pathID(c *gin.Context, what string) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid " + what + " ID",
			Message: what + " ID must be a positive integer",
		})
		return 0, false
	}
	return id, true
}

// GetProducts lists all products with their category name
func (h *Handler) GetProducts(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	products, err := h.store.ListProducts(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get products",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProduct returns one product or 404
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c, "Product")
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	product, err := h.store.GetProduct(ctx, id)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get product",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, product)
}

// CreateProduct adds a product to the catalog
func (h *Handler) CreateProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	id, err := h.store.CreateProduct(ctx, req.ToProduct())
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Failed to create product",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "product_id": id})
}

// GetCategories lists product categories
func (h *Handler) GetCategories(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	categories, err := h.store.ListCategories(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to get categories",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, categories)
}
