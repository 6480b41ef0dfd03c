package movements

import (
	"net/http"
	"strconv"

	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"
	"github.com/rakhatutebayev/wwp-inventory/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MovementsHandler struct {
	Service *MovementService
	Log     *zap.Logger
}

func RegisterRoutes(router *gin.RouterGroup, service *MovementService, log *zap.Logger) {
	handler := &MovementsHandler{Service: service, Log: log}

	router.GET("/movements", handler.ListMovements)
	router.POST("/movements", handler.CreateMovement)
	router.GET("/movements/:id", handler.GetMovement)
}

func (h *MovementsHandler) ListMovements(c *gin.Context) {
	var filter models.MovementFilter

	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))

	if raw := c.Query("device_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device_id filter"})
			return
		}
		filter.DeviceID = &id
	}

	movements, err := h.Service.ListMovements(filter)
	if err != nil {
		status := custom_error.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.Log.Error("Unable to list movements", zap.Error(err))
			c.AbortWithStatusJSON(status, gin.H{"error": "Unable to list movements"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, movements)
}

func (h *MovementsHandler) GetMovement(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movement ID"})
		return
	}

	movement, err := h.Service.GetMovement(id)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, movement)
}

func (h *MovementsHandler) CreateMovement(c *gin.Context) {
	var req models.MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID, err := security.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	movement, err := h.Service.Move(req, userID)
	if err != nil {
		status := custom_error.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.Log.Error("Unable to record movement", zap.Error(err))
			c.AbortWithStatusJSON(status, gin.H{"error": "Unable to record movement"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, movement)
}
