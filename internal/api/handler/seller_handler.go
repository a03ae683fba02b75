package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

// SellerHandler handles HTTP requests for seller profiles.
type SellerHandler struct {
	service ports.SellerService
}

func NewSellerHandler(service ports.SellerService) *SellerHandler {
	return &SellerHandler{service: service}
}

func toSellerResponse(s *domain.Seller) sellerResponse {
	return sellerResponse{
		ID:        s.ID,
		Username:  s.Username,
		Name:      s.Name,
		Email:     s.Email,
		Phone:     s.Phone,
		City:      s.City,
		CreatedAt: s.CreatedAt,
	}
}

// Create handles POST /v1/sellers — seller role; the profile belongs to the
// caller.
//
// @Summary      Create own seller profile
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile details"
// @Success      201   {object}  sellerResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/sellers [post]
func (h *SellerHandler) Create(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	seller, err := h.service.CreateSeller(c.Request().Context(), p.Username, ports.ProfileInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		City:  req.City,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toSellerResponse(seller))
}

// Get handles GET /v1/sellers/:username — public profile view.
//
// @Summary      Get a seller profile
// @Tags         sellers
// @Produce      json
// @Param        username  path      string  true  "Seller username"
// @Success      200       {object}  sellerResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/sellers/{username} [get]
func (h *SellerHandler) Get(c echo.Context) error {
	seller, err := h.service.GetSeller(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSellerResponse(seller))
}

// Update handles PUT /v1/sellers/:username — self or admin.
//
// @Summary      Update a seller profile
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string                true  "Seller username"
// @Param        body      body      updateProfileRequest  true  "Fields to change"
// @Success      200       {object}  sellerResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/sellers/{username} [put]
func (h *SellerHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	seller, err := h.service.UpdateSeller(c.Request().Context(), c.Param("username"), ports.ProfileInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
		City:  req.City,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSellerResponse(seller))
}

// Delete handles DELETE /v1/sellers/:username — admin only.
//
// @Summary      Delete a seller profile
// @Tags         sellers
// @Security     BearerAuth
// @Param        username  path  string  true  "Seller username"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/sellers/{username} [delete]
func (h *SellerHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteSeller(c.Request().Context(), c.Param("username")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
