package reports

import (
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ReportsHandler struct {
	Repository *ReportsRepository
	Log        *zap.Logger
}

func RegisterRoutes(router *gin.RouterGroup, repository *ReportsRepository, log *zap.Logger) {
	handler := &ReportsHandler{Repository: repository, Log: log}

	router.GET("/reports/devices", handler.DeviceReport)
	router.GET("/reports/devices/export", handler.ExportDeviceReport)
	router.GET("/reports/locations", handler.LocationReport)
}

func (h *ReportsHandler) DeviceReport(c *gin.Context) {
	rows, err := h.Repository.DeviceReport()
	if err != nil {
		h.Log.Error("Unable to build device report", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to build device report"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

var deviceReportHeader = []string{
	"id", "inventory_number", "serial_number", "company",
	"device_type", "brand", "model", "location_type", "location_name",
}

func (h *ReportsHandler) ExportDeviceReport(c *gin.Context) {
	rows, err := h.Repository.DeviceReport()
	if err != nil {
		h.Log.Error("Unable to export device report", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to export device report"})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="devices_report.csv"`)
	c.Status(http.StatusOK)

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	if err := writer.Write(deviceReportHeader); err != nil {
		h.Log.Error("Unable to write report header", zap.Error(err))
		return
	}
	for _, row := range rows {
		record := []string{
			strconv.Itoa(row.ID),
			row.InventoryNumber,
			row.SerialNumber,
			row.Company,
			row.DeviceType,
			row.Brand,
			row.Model,
			row.LocationType,
			row.LocationName,
		}
		if err := writer.Write(record); err != nil {
			h.Log.Error("Unable to write report row", zap.Error(err))
			return
		}
	}
}

func (h *ReportsHandler) LocationReport(c *gin.Context) {
	rows, err := h.Repository.LocationReport()
	if err != nil {
		h.Log.Error("Unable to build location report", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to build location report"})
		return
	}

	c.JSON(http.StatusOK, rows)
}
