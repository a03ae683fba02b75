package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

// PurchaseHandler handles HTTP requests for purchases. Purchases are
// two-party resources, so participation checks (buyer, seller, admin) live
// here rather than in a path-parameter ownership gate.
type PurchaseHandler struct {
	service ports.PurchaseService
}

func NewPurchaseHandler(service ports.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{service: service}
}

// Create handles POST /v1/purchases — buyer role required.
//
// @Summary      Purchase a car
// @Tags         purchases
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPurchaseRequest  true  "Car to purchase"
// @Success      201   {object}  purchaseResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/purchases [post]
func (h *PurchaseHandler) Create(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req createPurchaseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	purchase, err := h.service.CreatePurchase(c.Request().Context(), p.Username, req.CarID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPurchaseResponse(purchase))
}

// Get handles GET /v1/purchases/:reference — buyer, seller or admin.
//
// @Summary      Get a purchase
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Purchase reference"
// @Success      200        {object}  purchaseResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/purchases/{reference} [get]
func (h *PurchaseHandler) Get(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	purchase, err := h.service.GetPurchase(c.Request().Context(), c.Param("reference"))
	if err != nil {
		return err
	}
	if !participant(p, purchase) {
		return domain.ErrForbidden
	}
	return c.JSON(http.StatusOK, toPurchaseResponse(purchase))
}

// Complete handles POST /v1/purchases/:reference/complete — the seller
// confirms the handover; admin may force it.
//
// @Summary      Complete a purchase
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Purchase reference"
// @Success      200        {object}  purchaseResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      409        {object}  errorResponse
// @Router       /v1/purchases/{reference}/complete [post]
func (h *PurchaseHandler) Complete(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	reference := c.Param("reference")
	purchase, err := h.service.GetPurchase(c.Request().Context(), reference)
	if err != nil {
		return err
	}
	if !p.Is(domain.RoleAdmin) && p.Username != purchase.Seller {
		return domain.ErrForbidden
	}

	completed, err := h.service.CompletePurchase(c.Request().Context(), reference)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPurchaseResponse(completed))
}

// Cancel handles POST /v1/purchases/:reference/cancel — the buyer backs out
// of a pending purchase; admin may force it.
//
// @Summary      Cancel a purchase
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        reference  path      string  true  "Purchase reference"
// @Success      200        {object}  purchaseResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Failure      409        {object}  errorResponse
// @Router       /v1/purchases/{reference}/cancel [post]
func (h *PurchaseHandler) Cancel(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	reference := c.Param("reference")
	purchase, err := h.service.GetPurchase(c.Request().Context(), reference)
	if err != nil {
		return err
	}
	if !p.Is(domain.RoleAdmin) && p.Username != purchase.Buyer {
		return domain.ErrForbidden
	}

	cancelled, err := h.service.CancelPurchase(c.Request().Context(), reference)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPurchaseResponse(cancelled))
}

// List handles GET /v1/purchases — buyers see their own purchases; admins
// see everything and may scope with ?buyer=.
//
// @Summary      List purchases
// @Tags         purchases
// @Produce      json
// @Security     BearerAuth
// @Param        buyer  query     string  false  "Buyer username (admin only)"
// @Param        page   query     int     false  "Page (1-based)"
// @Param        limit  query     int     false  "Page size (max 100)"
// @Success      200    {object}  listPurchasesResponse
// @Failure      403    {object}  errorResponse
// @Router       /v1/purchases [get]
func (h *PurchaseHandler) List(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	buyer := p.Username
	if p.Is(domain.RoleAdmin) {
		buyer = c.QueryParam("buyer")
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	purchases, total, err := h.service.ListPurchases(c.Request().Context(), buyer, page, limit)
	if err != nil {
		return err
	}

	items := make([]purchaseResponse, len(purchases))
	for i, purchase := range purchases {
		items[i] = toPurchaseResponse(purchase)
	}
	if page < 1 {
		page = 1
	}
	return c.JSON(http.StatusOK, listPurchasesResponse{
		Data:       items,
		Pagination: paginationResponse{Total: total, Page: page, Limit: limit},
	})
}

func participant(p *domain.Principal, purchase *domain.Purchase) bool {
	return p.Is(domain.RoleAdmin) || p.Username == purchase.Buyer || p.Username == purchase.Seller
}
