package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/car-registry/backend/internal/model"
	"github.com/car-registry/backend/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// AddImgUser godoc
// @Summary Attach a profile image to a user
// @Tags user
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Param imageFile formData file true "PNG image"
// @Success 200 {object} model.StatusResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/user/addImgUser/{id}/add [post]
func (h *UserHandler) AddImgUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	file, err := c.FormFile("imageFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing imageFile"})
		return
	}
	if !strings.Contains(file.Filename, ".png") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "the image must be in PNG format"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable image"})
		return
	}

	found, err := h.svc.AddUserImage(c.Request.Context(), id, data)
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
		Message: "Image successfully saved.",
	})
}

// GetUserImg godoc
// @Summary Download a user's profile image
// @Tags user
// @Produce png
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {file} binary
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /api/user/userImg/{id} [get]
func (h *UserHandler) GetUserImg(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	data, found, err := h.svc.GetUserImage(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if !found {
		writeNotFound(c)
		return
	}

	c.Data(http.StatusOK, "image/png", data)
}
