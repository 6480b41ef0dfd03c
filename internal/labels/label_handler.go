package labels

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LabelsHandler struct {
	Service *LabelService
	Log     *zap.Logger
}

func RegisterRoutes(router *gin.RouterGroup, service *LabelService, log *zap.Logger) {
	handler := &LabelsHandler{Service: service, Log: log}

	router.GET("/labels/qr/:device_id", handler.QRCode)
	router.GET("/labels/label-data/:device_id", handler.LabelData)
	router.GET("/labels/print", handler.PrintSheet)
}

func (h *LabelsHandler) QRCode(c *gin.Context) {
	deviceID, err := strconv.Atoi(c.Param("device_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
		return
	}

	pngBytes, err := h.Service.QRCodePNG(deviceID)
	if err != nil {
		status := custom_error.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.Log.Error("Unable to generate QR code", zap.Error(err))
			c.AbortWithStatusJSON(status, gin.H{"error": "Unable to generate QR code"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", pngBytes)
}

func (h *LabelsHandler) LabelData(c *gin.Context) {
	deviceID, err := strconv.Atoi(c.Param("device_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device ID"})
		return
	}

	label, err := h.Service.LabelData(deviceID)
	if err != nil {
		status := custom_error.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.Log.Error("Unable to build label data", zap.Error(err))
			c.AbortWithStatusJSON(status, gin.H{"error": "Unable to build label data"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, label)
}

var printSheetTemplate = template.Must(template.New("labels").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Device labels</title>
<style>
.label { display: inline-block; border: 1px solid #000; padding: 8px; margin: 4px; width: 220px; font-family: sans-serif; font-size: 12px; }
.label img { width: 96px; height: 96px; float: right; }
.label .number { font-weight: bold; font-size: 14px; }
@media print { .label { page-break-inside: avoid; } }
</style>
</head>
<body>
{{range .}}
<div class="label">
	<img src="{{.QRCode}}" alt="{{.InventoryNumber}}">
	<div class="number">{{.InventoryNumber}}</div>
	<div>{{.Company}}</div>
	<div>{{.DeviceType}} {{.Brand}} {{.Model}}</div>
	<div>SN: {{.SerialNumber}}</div>
</div>
{{end}}
</body>
</html>
`))

// PrintSheet renders a printable HTML page of labels. Device IDs come as a
// comma-separated `device_ids` query parameter; omitted means every device.
func (h *LabelsHandler) PrintSheet(c *gin.Context) {
	var deviceIDs []int
	if raw := c.Query("device_ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid device_ids parameter"})
				return
			}
			deviceIDs = append(deviceIDs, id)
		}
	}

	sheet, err := h.Service.PrintSheet(deviceIDs)
	if err != nil {
		status := custom_error.HTTPStatus(err)
		if status == http.StatusInternalServerError {
			h.Log.Error("Unable to build print sheet", zap.Error(err))
			c.AbortWithStatusJSON(status, gin.H{"error": "Unable to build print sheet"})
			return
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := printSheetTemplate.Execute(c.Writer, sheet); err != nil {
		h.Log.Error("Unable to render print sheet", zap.Error(err))
	}
}
