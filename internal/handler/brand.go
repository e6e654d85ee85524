package handler

import (
	"net/http"
	"strconv"

	"github.com/car-registry/backend/internal/model"
	"github.com/car-registry/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type BrandHandler struct {
	svc *service.BrandService
}

func NewBrandHandler(svc *service.BrandService) *BrandHandler {
	return &BrandHandler{svc: svc}
}

// AddBrand godoc
// @Summary Create a brand
// @Tags brand
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.BrandRequest true "Brand details"
// @Success 200 {object} model.BrandResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/brand/addBrand [post]
func (h *BrandHandler) AddBrand(c *gin.Context) {
	var req model.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	brand, err := h.svc.Save(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ToBrandResponse(*brand))
}

// AddBrands godoc
// @Summary Create a list of brands as one batch
// @Tags brand
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []model.BrandRequest true "Brands"
// @Success 200 {array} model.BrandResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 503 {object} model.ErrorResponse
// @Router /api/brand/addBrands [post]
func (h *BrandHandler) AddBrands(c *gin.Context) {
	var reqs []model.BrandRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	brands, err := h.svc.SaveAll(c.Request.Context(), reqs)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	out := make([]model.BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, model.ToBrandResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

// GetBrand godoc
// @Summary Get a brand by id
// @Tags brand
// @Produce json
// @Security BearerAuth
// @Param id path int true "Brand ID"
// @Success 200 {object} model.BrandResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/brand/getBrand/{id} [get]
func (h *BrandHandler) GetBrand(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid brand id"})
		return
	}

	brand, found, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		writeNotFound(c)
		return
	}

	c.JSON(http.StatusOK, model.ToBrandResponse(*brand))
}

// GetBrands godoc
// @Summary List all brands
// @Tags brand
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.BrandResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 503 {object} model.ErrorResponse
// @Router /api/brand/getBrands [get]
func (h *BrandHandler) GetBrands(c *gin.Context) {
	brands, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if len(brands) == 0 {
		writeNotFound(c)
		return
	}

	out := make([]model.BrandResponse, 0, len(brands))
	for _, b := range brands {
		out = append(out, model.ToBrandResponse(b))
	}
	c.JSON(http.StatusOK, out)
}

// UpdateBrand godoc
// @Summary Replace a brand by id
// @Tags brand
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Brand ID"
// @Param request body model.BrandRequest true "Brand details"
// @Success 200 {object} model.BrandResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/brand/updateBrand/{id} [put]
func (h *BrandHandler) UpdateBrand(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid brand id"})
		return
	}

	var req model.BrandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	brand, found, err := h.svc.UpdateByID(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		writeNotFound(c)
		return
	}

	c.JSON(http.StatusOK, model.ToBrandResponse(*brand))
}

// DeleteBrand godoc
// @Summary Delete a brand by id
// @Tags brand
// @Produce json
// @Security BearerAuth
// @Param id path int true "Brand ID"
// @Success 200 {object} model.StatusResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Router /api/brand/deleteBrand/{id} [delete]
func (h *BrandHandler) DeleteBrand(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid brand id"})
		return
	}

	found, err := h.svc.DeleteByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		writeNotFound(c)
		return
	}

	c.JSON(http.StatusOK, model.StatusResponse{
		Status:  "success",
		Message: "Brand successfully eliminated",
	})
}
