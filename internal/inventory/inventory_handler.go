package inventory

import (
	"net/http"
	"strconv"

	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"
	"github.com/rakhatutebayev/wwp-inventory/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	Service *InventoryService
	Log     *zap.Logger
}

func RegisterRoutes(router *gin.RouterGroup, service *InventoryService, log *zap.Logger) {
	handler := &InventoryHandler{Service: service, Log: log}

	router.GET("/inventory/sessions", handler.ListSessions)
	router.POST("/inventory/sessions", handler.CreateSession)
	router.GET("/inventory/sessions/:id", handler.GetSession)
	router.PUT("/inventory/sessions/:id", handler.UpdateSession)
	router.GET("/inventory/sessions/:id/devices", handler.SessionDevices)
	router.GET("/inventory/sessions/:id/statistics", handler.Statistics)
	router.POST("/inventory/sessions/:id/records", handler.UpsertRecord)
	router.PUT("/inventory/sessions/:id/records/:record_id", handler.UpdateRecord)
	router.POST("/inventory/records/:id/check", handler.CheckRecord)
	router.POST("/inventory/records/:id/uncheck", handler.UncheckRecord)
}

func (h *InventoryHandler) ListSessions(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	var status *models.SessionStatus
	if raw := c.Query("status"); raw != "" {
		parsed := models.SessionStatus(raw)
		status = &parsed
	}

	sessions, err := h.Service.ListSessions(status, offset, limit)
	if err != nil {
		status := custom_error.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.Log.Error("Unable to list inventory sessions", zap.Error(err))
			c.AbortWithStatusJSON(status, gin.H{"error": "Unable to list inventory sessions"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

func (h *InventoryHandler) CreateSession(c *gin.Context) {
	var req models.InventorySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID, err := security.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	session, err := h.Service.CreateSession(req, userID)
	if err != nil {
		status := custom_error.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.Log.Error("Unable to create inventory session", zap.Error(err))
			c.AbortWithStatusJSON(status, gin.H{"error": "Unable to create inventory session"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *InventoryHandler) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	session, err := h.Service.GetSession(id)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *InventoryHandler) UpdateSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var patch models.InventorySessionPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	session, err := h.Service.UpdateSession(id, patch)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *InventoryHandler) SessionDevices(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

	var checked *bool
	if raw := c.Query("checked"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid checked filter"})
			return
		}
		checked = &parsed
	}

	records, err := h.Service.SessionDevices(id, checked, offset, limit)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

func (h *InventoryHandler) Statistics(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	statistics, err := h.Service.Statistics(id)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, statistics)
}

func (h *InventoryHandler) UpsertRecord(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req models.InventoryRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID, err := security.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.Service.UpsertRecord(id, req, userID)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *InventoryHandler) UpdateRecord(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	recordID, err := strconv.Atoi(c.Param("record_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	var patch models.InventoryRecordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	userID, err := security.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.Service.UpdateRecord(id, recordID, patch, userID)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *InventoryHandler) CheckRecord(c *gin.Context) {
	h.toggleRecord(c, true)
}

func (h *InventoryHandler) UncheckRecord(c *gin.Context) {
	h.toggleRecord(c, false)
}

func (h *InventoryHandler) toggleRecord(c *gin.Context, check bool) {
	recordID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid record ID"})
		return
	}

	userID, err := security.GetUserIDFromToken(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var record *models.InventoryRecord
	if check {
		record, err = h.Service.CheckRecord(recordID, userID)
	} else {
		record, err = h.Service.UncheckRecord(recordID, userID)
	}
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

func sessionID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session ID"})
		return 0, false
	}
	return id, true
}
