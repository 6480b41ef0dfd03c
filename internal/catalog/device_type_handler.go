package catalog

import (
	"net/http"

	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) ListDeviceTypes(c *gin.Context) {
	offset, limit := pagination(c)

	deviceTypes, err := h.Repository.ListDeviceTypes(offset, limit)
	if err != nil {
		h.Log.Error("Unable to list device types", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to list device types"})
		return
	}

	c.JSON(http.StatusOK, deviceTypes)
}

func (h *Handler) GetDeviceType(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device type ID"})
		return
	}

	deviceType, err := h.Repository.GetDeviceType(id)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, deviceType)
}

func (h *Handler) CreateDeviceType(c *gin.Context) {
	var req models.DeviceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	taken, err := h.Repository.DeviceTypeExistsByNameOrCode(req.Name, req.Code, 0)
	if err != nil {
		h.Log.Error("Unable to verify device type uniqueness", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to verify device type uniqueness"})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Device type with this name or code already exists"})
		return
	}

	deviceType, err := h.Repository.InsertDeviceType(req)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, deviceType)
}

func (h *Handler) UpdateDeviceType(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device type ID"})
		return
	}

	var patch models.DeviceTypePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if _, err := h.Repository.GetDeviceType(id); err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	if patch.Code != nil {
		taken, err := h.Repository.DeviceTypeExistsByCode(*patch.Code, id)
		if err != nil {
			h.Log.Error("Unable to verify device type uniqueness", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to verify device type uniqueness"})
			return
		}
		if taken {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Device type with this code already exists"})
			return
		}
	}

	deviceType, err := h.Repository.UpdateDeviceType(id, patch)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, deviceType)
}

func (h *Handler) DeleteDeviceType(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device type ID"})
		return
	}

	if err := h.Repository.DeleteDeviceType(id); err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
