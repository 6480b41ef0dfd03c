package catalog

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	Repository *Repository
	Log        *zap.Logger
}

func NewHandler(r *Repository, log *zap.Logger) *Handler {
	return &Handler{Repository: r, Log: log}
}

func RegisterRoutes(router *gin.RouterGroup, r *Repository, log *zap.Logger) {
	handler := NewHandler(r, log)

	router.GET("/companies", handler.ListCompanies)
	router.POST("/companies", handler.CreateCompany)
	router.GET("/companies/:id", handler.GetCompany)
	router.PUT("/companies/:id", handler.UpdateCompany)
	router.DELETE("/companies/:id", handler.DeleteCompany)

	router.GET("/device-types", handler.ListDeviceTypes)
	router.POST("/device-types", handler.CreateDeviceType)
	router.GET("/device-types/:id", handler.GetDeviceType)
	router.PUT("/device-types/:id", handler.UpdateDeviceType)
	router.DELETE("/device-types/:id", handler.DeleteDeviceType)

	router.GET("/brands", handler.ListBrands)
	router.POST("/brands", handler.CreateBrand)
	router.GET("/brands/:id", handler.GetBrand)
	router.PUT("/brands/:id", handler.UpdateBrand)
	router.DELETE("/brands/:id", handler.DeleteBrand)

	router.GET("/models", handler.ListModels)
	router.POST("/models", handler.CreateModel)
	router.GET("/models/:id", handler.GetModel)
	router.PUT("/models/:id", handler.UpdateModel)
	router.DELETE("/models/:id", handler.DeleteModel)

	router.GET("/warehouses", handler.ListWarehouses)
	router.POST("/warehouses", handler.CreateWarehouse)
	router.GET("/warehouses/:id", handler.GetWarehouse)
	router.PUT("/warehouses/:id", handler.UpdateWarehouse)
	router.DELETE("/warehouses/:id", handler.DeleteWarehouse)
}

func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// pagination reads the skip/limit query parameters shared by every listing.
func pagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	return offset, limit
}
