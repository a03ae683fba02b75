package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/autolane/marketplace-api/internal/core/ports"
)

// CarHandler handles HTTP requests for car listings.
type CarHandler struct {
	service ports.CarService
}

func NewCarHandler(service ports.CarService) *CarHandler {
	return &CarHandler{service: service}
}

// List handles GET /v1/cars — public browsing with filters and pagination.
//
// @Summary      List car listings
// @Tags         cars
// @Produce      json
// @Param        make       query     string  false  "Filter by make"
// @Param        seller     query     string  false  "Filter by seller username"
// @Param        status     query     string  false  "Filter by status"
// @Param        max_price  query     int     false  "Price ceiling in cents"
// @Param        page       query     int     false  "Page (1-based)"
// @Param        limit      query     int     false  "Page size (max 100)"
// @Success      200  {object}  listCarsResponse
// @Router       /v1/cars [get]
func (h *CarHandler) List(c echo.Context) error {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	maxPrice, _ := strconv.ParseInt(c.QueryParam("max_price"), 10, 64)

	result, err := h.service.ListCars(c.Request().Context(), ports.ListCarsFilter{
		Owner:         c.QueryParam("seller"),
		Make:          c.QueryParam("make"),
		Status:        c.QueryParam("status"),
		MaxPriceCents: maxPrice,
		Page:          page,
		Limit:         limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListCarsResponse(result))
}

// Get handles GET /v1/cars/:id — public.
//
// @Summary      Get a car listing
// @Tags         cars
// @Produce      json
// @Param        id   path      string  true  "Car ID"
// @Success      200  {object}  carResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/cars/{id} [get]
func (h *CarHandler) Get(c echo.Context) error {
	car, err := h.service.GetCar(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCarResponse(car))
}

// Create handles POST /v1/cars — seller role required; the listing is owned
// by the caller.
//
// @Summary      Publish a car listing
// @Tags         cars
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCarRequest  true  "Listing details"
// @Success      201   {object}  carResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cars [post]
func (h *CarHandler) Create(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req createCarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	car, err := h.service.CreateCar(c.Request().Context(), ports.CreateCarInput{
		Owner:       p.Username,
		Make:        req.Make,
		Model:       req.Model,
		Year:        req.Year,
		PriceCents:  req.PriceCents,
		MileageKm:   req.MileageKm,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toCarResponse(car))
}

// Update handles PATCH /v1/cars/:id — owner or admin (enforced by the
// ownership gate on the route).
//
// @Summary      Update a car listing
// @Tags         cars
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Car ID"
// @Param        body  body      updateCarRequest  true  "Fields to change"
// @Success      200   {object}  carResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/cars/{id} [patch]
func (h *CarHandler) Update(c echo.Context) error {
	var req updateCarRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	car, err := h.service.UpdateCar(c.Request().Context(), c.Param("id"), ports.UpdateCarInput{
		PriceCents:  req.PriceCents,
		MileageKm:   req.MileageKm,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toCarResponse(car))
}

// Delete handles DELETE /v1/cars/:id — owner or admin.
//
// @Summary      Delete a car listing
// @Tags         cars
// @Security     BearerAuth
// @Param        id  path  string  true  "Car ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/cars/{id} [delete]
func (h *CarHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteCar(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
