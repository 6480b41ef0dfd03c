package catalog

import (
	"net/http"

	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) ListBrands(c *gin.Context) {
	offset, limit := pagination(c)

	brands, err := h.Repository.ListBrands(offset, limit)
	if err != nil {
		h.Log.Error("Unable to list brands", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to list brands"})
		return
	}

	c.JSON(http.StatusOK, brands)
}

func (h *Handler) GetBrand(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand ID"})
		return
	}

	brand, err := h.Repository.GetBrand(id)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, brand)
}

func (h *Handler) CreateBrand(c *gin.Context) {
	var req models.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	taken, err := h.Repository.BrandExistsByName(req.Name, 0)
	if err != nil {
		h.Log.Error("Unable to verify brand uniqueness", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to verify brand uniqueness"})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand with this name already exists"})
		return
	}

	brand, err := h.Repository.InsertBrand(req)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, brand)
}

func (h *Handler) UpdateBrand(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand ID"})
		return
	}

	var req models.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if _, err := h.Repository.GetBrand(id); err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	taken, err := h.Repository.BrandExistsByName(req.Name, id)
	if err != nil {
		h.Log.Error("Unable to verify brand uniqueness", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to verify brand uniqueness"})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand with this name already exists"})
		return
	}

	brand, err := h.Repository.UpdateBrand(id, req)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, brand)
}

func (h *Handler) DeleteBrand(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid brand ID"})
		return
	}

	if err := h.Repository.DeleteBrand(id); err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
