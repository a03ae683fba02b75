package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

// maxImageBytes caps a single upload at 10 MiB.
const maxImageBytes = 10 << 20

type imageResponse struct {
	ID          string    `json:"id"`
	CarID       string    `json:"car_id"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	URL         string    `json:"url,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

func toImageResponse(img *domain.CarImage) imageResponse {
	return imageResponse{
		ID:          img.ID,
		CarID:       img.CarID,
		ContentType: img.ContentType,
		SizeBytes:   img.SizeBytes,
		URL:         img.URL,
		UploadedAt:  img.UploadedAt,
	}
}

// ImageHandler handles listing photo uploads and reads.
type ImageHandler struct {
	service ports.ImageService
}

func NewImageHandler(service ports.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// Upload handles POST /v1/cars/:id/images — multipart upload, car owner or
// admin (enforced by the ownership gate on the route).
//
// @Summary      Upload a listing photo
// @Tags         images
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Car ID"
// @Param        file  formData  file    true  "Image file"
// @Success      201   {object}  imageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      413   {object}  errorResponse
// @Router       /v1/cars/{id}/images [post]
func (h *ImageHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "missing file")
	}
	if file.Size > maxImageBytes {
		return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "image too large")
	}

	contentType := file.Header.Get(echo.HeaderContentType)
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	image, err := h.service.UploadImage(c.Request().Context(), c.Param("id"), contentType, src, file.Size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toImageResponse(image))
}

// List handles GET /v1/cars/:id/images — public.
//
// @Summary      List a car's photos
// @Tags         images
// @Produce      json
// @Param        id   path     string  true  "Car ID"
// @Success      200  {array}  imageResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/cars/{id}/images [get]
func (h *ImageHandler) List(c echo.Context) error {
	images, err := h.service.ListCarImages(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	out := make([]imageResponse, len(images))
	for i, img := range images {
		out[i] = toImageResponse(img)
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/images/:id — car owner or admin.
//
// @Summary      Delete a listing photo
// @Tags         images
// @Security     BearerAuth
// @Param        id  path  string  true  "Image ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/images/{id} [delete]
func (h *ImageHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteImage(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
