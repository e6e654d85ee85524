package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/car-registry/backend/internal/model"
	"github.com/car-registry/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	svc *service.CarService
}

func NewCarHandler(svc *service.CarService) *CarHandler {
	return &CarHandler{svc: svc}
}

// AddCar godoc
// @Summary Create a car
// @Tags car
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CarRequest true "Car details"
// @Success 200 {object} model.CarResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/car/addCar [post]
func (h *CarHandler) AddCar(c *gin.Context) {
	var req model.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	car, err := h.svc.Save(c.Request.Context(), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ToCarResponse(*car))
}

// AddCars godoc
// @Summary Create a list of cars as one batch
// @Tags car
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []model.CarRequest true "Cars"
// @Success 200 {array} model.CarResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 503 {object} model.ErrorResponse
// @Router /api/car/addCars [post]
func (h *CarHandler) AddCars(c *gin.Context) {
	var reqs []model.CarRequest
	if err := c.ShouldBindJSON(&reqs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	cars, err := h.svc.SaveAll(c.Request.Context(), reqs)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ToCarResponses(cars))
}

// GetCar godoc
// @Summary Get a car by id
// @Tags car
// @Produce json
// @Security BearerAuth
// @Param id path int true "Car ID"
// @Success 200 {object} model.CarResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/car/getCar/{id} [get]
func (h *CarHandler) GetCar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
		return
	}

	car, found, err := h.svc.FindByID(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		writeNotFound(c)
		return
	}

	c.JSON(http.StatusOK, model.ToCarResponse(*car))
}

// GetCars godoc
// @Summary List all cars
// @Tags car
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CarResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 503 {object} model.ErrorResponse
// @Router /api/car/getCars [get]
func (h *CarHandler) GetCars(c *gin.Context) {
	cars, err := h.svc.FindAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if len(cars) == 0 {
		writeNotFound(c)
		return
	}

	c.JSON(http.StatusOK, model.ToCarResponses(cars))
}

// UpdateCar godoc
// @Summary Replace a car by id
// @Tags car
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Car ID"
// @Param request body model.CarRequest true "Car details"
// @Success 200 {object} model.CarResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/car/updateCar/{id} [put]
func (h *CarHandler) UpdateCar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
		return
	}

	var req model.CarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	car, found, err := h.svc.UpdateByID(c.Request.Context(), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		writeNotFound(c)
		return
	}

	c.JSON(http.StatusOK, model.ToCarResponse(*car))
}

// DeleteCar godoc
// @Summary Delete a car by id
// @Tags car
// @Produce json
// @Security BearerAuth
// @Param id path int true "Car ID"
// @Success 200 {object} model.StatusResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/car/deleteCar/{id} [delete]
func (h *CarHandler) DeleteCar(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car id"})
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
		Message: "Car successfully eliminated",
	})
}

// UploadCSV godoc
// @Summary Bulk-import cars from a CSV file
// @Tags car
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "CSV file"
// @Success 200 {array} model.CarResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/car/uploadCSV [post]
func (h *CarHandler) UploadCSV(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
		return
	}
	if file.Size == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "the file is empty"})
		return
	}
	if !strings.Contains(file.Filename, ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "the file is not a CSV"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer src.Close()

	cars, err := h.svc.ImportCSV(c.Request.Context(), src)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.ToCarResponses(cars))
}

// DownloadFileCars godoc
// @Summary Export all cars as a CSV file
// @Tags car
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {file} binary
// @Failure 500 {object} model.ErrorResponse
// @Router /api/car/downloadFileCars [get]
func (h *CarHandler) DownloadFileCars(c *gin.Context) {
	content, err := h.svc.ExportCSV(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="cars.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(content))
}
