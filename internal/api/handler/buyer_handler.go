package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

// BuyerHandler handles HTTP requests for buyer profiles.
type BuyerHandler struct {
	service ports.BuyerService
}

func NewBuyerHandler(service ports.BuyerService) *BuyerHandler {
	return &BuyerHandler{service: service}
}

func toBuyerResponse(b *domain.Buyer) buyerResponse {
	return buyerResponse{
		ID:        b.ID,
		Username:  b.Username,
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		CreatedAt: b.CreatedAt,
	}
}

// Create handles POST /v1/buyers — buyer role; the profile belongs to the
// caller.
//
// @Summary      Create own buyer profile
// @Tags         buyers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile details"
// @Success      201   {object}  buyerResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/buyers [post]
func (h *BuyerHandler) Create(c echo.Context) error {
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

	buyer, err := h.service.CreateBuyer(c.Request().Context(), p.Username, ports.ProfileInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toBuyerResponse(buyer))
}

// Get handles GET /v1/buyers/:username — self or admin.
//
// @Summary      Get a buyer profile
// @Tags         buyers
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Buyer username"
// @Success      200       {object}  buyerResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/buyers/{username} [get]
func (h *BuyerHandler) Get(c echo.Context) error {
	buyer, err := h.service.GetBuyer(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBuyerResponse(buyer))
}

// Update handles PUT /v1/buyers/:username — self or admin.
//
// @Summary      Update a buyer profile
// @Tags         buyers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string                true  "Buyer username"
// @Param        body      body      updateProfileRequest  true  "Fields to change"
// @Success      200       {object}  buyerResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Router       /v1/buyers/{username} [put]
func (h *BuyerHandler) Update(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	buyer, err := h.service.UpdateBuyer(c.Request().Context(), c.Param("username"), ports.ProfileInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBuyerResponse(buyer))
}

// Delete handles DELETE /v1/buyers/:username — admin only.
//
// @Summary      Delete a buyer profile
// @Tags         buyers
// @Security     BearerAuth
// @Param        username  path  string  true  "Buyer username"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/buyers/{username} [delete]
func (h *BuyerHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteBuyer(c.Request().Context(), c.Param("username")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// List handles GET /v1/buyers — admin only.
//
// @Summary      List buyer profiles
// @Tags         buyers
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int  false  "Page (1-based)"
// @Param        limit  query     int  false  "Page size (max 100)"
// @Success      200    {object}  listBuyersResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/buyers [get]
func (h *BuyerHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	buyers, total, err := h.service.ListBuyers(c.Request().Context(), page, limit)
	if err != nil {
		return err
	}

	items := make([]buyerResponse, len(buyers))
	for i, b := range buyers {
		items[i] = toBuyerResponse(b)
	}
	if page < 1 {
		page = 1
	}
	return c.JSON(http.StatusOK, listBuyersResponse{
		Data:       items,
		Pagination: paginationResponse{Total: total, Page: page, Limit: limit},
	})
}
