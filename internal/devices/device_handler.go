package devices

import (
	"net/http"
	"strconv"

	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DevicesHandler struct {
	Service *DeviceService
	Log     *zap.Logger
}

func RegisterRoutes(router *gin.RouterGroup, service *DeviceService, log *zap.Logger) {
	handler := &DevicesHandler{Service: service, Log: log}

	router.GET("/devices", handler.ListDevices)
	router.POST("/devices", handler.CreateDevice)
	router.GET("/devices/by-inventory/:number", handler.GetDeviceByInventoryNumber)
	router.GET("/devices/:id", handler.GetDevice)
	router.PUT("/devices/:id", handler.UpdateDevice)
	router.DELETE("/devices/:id", handler.DeleteDevice)
}

func (h *DevicesHandler) ListDevices(c *gin.Context) {
	filter, err := parseDeviceFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	devices, err := h.Service.ListDevices(filter)
	if err != nil {
		status := custom_error.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.Log.Error("Unable to list devices", zap.Error(err))
			c.AbortWithStatusJSON(status, gin.H{"error": "Unable to list devices"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, devices)
}

func parseDeviceFilter(c *gin.Context) (models.DeviceFilter, error) {
	var filter models.DeviceFilter

	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	if raw := c.Query("device_type_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter, custom_error.NewInvalidOperation("Invalid device_type_id filter")
		}
		filter.DeviceTypeID = &id
	}
	if raw := c.Query("brand_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter, custom_error.NewInvalidOperation("Invalid brand_id filter")
		}
		filter.BrandID = &id
	}
	if raw := c.Query("location_type"); raw != "" {
		locationType := models.LocationType(raw)
		filter.LocationType = &locationType
	}
	if raw := c.Query("location_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter, custom_error.NewInvalidOperation("Invalid location_id filter")
		}
		filter.LocationID = &id
	}

	return filter, nil
}

func (h *DevicesHandler) GetDevice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
		return
	}

	device, err := h.Service.GetDevice(id)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, device)
}

func (h *DevicesHandler) GetDeviceByInventoryNumber(c *gin.Context) {
	device, err := h.Service.GetDeviceByInventoryNumber(c.Param("number"))
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, device)
}

func (h *DevicesHandler) CreateDevice(c *gin.Context) {
	var req models.DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	device, err := h.Service.CreateDevice(req)
	if err != nil {
		status := custom_error.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.Log.Error("Unable to create device", zap.Error(err))
			c.AbortWithStatusJSON(status, gin.H{"error": "Unable to create device"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, device)
}

func (h *DevicesHandler) UpdateDevice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
		return
	}

	var patch models.DevicePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	device, err := h.Service.UpdateDevice(id, patch)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, device)
}

func (h *DevicesHandler) DeleteDevice(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
		return
	}

	if err := h.Service.DeleteDevice(id); err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
