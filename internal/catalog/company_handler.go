package catalog

import (
	"net/http"
	"strings"

	custom_error "github.com/rakhatutebayev/wwp-inventory/pkg/errors"
	"github.com/rakhatutebayev/wwp-inventory/pkg/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (h *Handler) ListCompanies(c *gin.Context) {
	offset, limit := pagination(c)

	companies, err := h.Repository.ListCompanies(offset, limit)
	if err != nil {
		h.Log.Error("Unable to list companies", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to list companies"})
		return
	}

	c.JSON(http.StatusOK, companies)
}

func (h *Handler) GetCompany(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID"})
		return
	}

	company, err := h.Repository.GetCompany(id)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *Handler) CreateCompany(c *gin.Context) {
	var req models.CompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	// Company codes are stored upper-case, they prefix inventory numbers.
	req.Code = strings.ToUpper(req.Code)

	taken, err := h.Repository.CompanyExistsByNameOrCode(req.Name, req.Code, 0)
	if err != nil {
		h.Log.Error("Unable to verify company uniqueness", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to verify company uniqueness"})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company with this name or code already exists"})
		return
	}

	company, err := h.Repository.InsertCompany(req)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, company)
}

func (h *Handler) UpdateCompany(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID"})
		return
	}

	var patch models.CompanyPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if _, err := h.Repository.GetCompany(id); err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	if patch.Code != nil {
		upper := strings.ToUpper(*patch.Code)
		patch.Code = &upper
	}

	if patch.Name != nil || patch.Code != nil {
		name, code := "", ""
		if patch.Name != nil {
			name = *patch.Name
		}
		if patch.Code != nil {
			code = *patch.Code
		}
		taken, err := h.Repository.CompanyExistsByNameOrCode(name, code, id)
		if err != nil {
			h.Log.Error("Unable to verify company uniqueness", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Unable to verify company uniqueness"})
			return
		}
		if taken {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Company with this name or code already exists"})
			return
		}
	}

	company, err := h.Repository.UpdateCompany(id, patch)
	if err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, company)
}

func (h *Handler) DeleteCompany(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid company ID"})
		return
	}

	if err := h.Repository.DeleteCompany(id); err != nil {
		c.JSON(custom_error.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
