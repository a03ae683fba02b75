package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

type createReviewRequest struct {
	Rating  int    `json:"rating"  validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type reviewResponse struct {
	ID        string    `json:"id"`
	Seller    string    `json:"seller"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toReviewResponse(r *domain.Review) reviewResponse {
	return reviewResponse{
		ID:        r.ID,
		Seller:    r.Seller,
		Author:    r.Author,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// ReviewHandler handles HTTP requests for seller reviews.
type ReviewHandler struct {
	service ports.ReviewService
}

func NewReviewHandler(service ports.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

// Create handles POST /v1/sellers/:username/reviews — buyer role required.
//
// @Summary      Review a seller
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string               true  "Seller username"
// @Param        body      body      createReviewRequest  true  "Rating and comment"
// @Success      201       {object}  reviewResponse
// @Failure      403       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      409       {object}  errorResponse
// @Router       /v1/sellers/{username}/reviews [post]
func (h *ReviewHandler) Create(c echo.Context) error {
	p, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	var req createReviewRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	review, err := h.service.CreateReview(c.Request().Context(), p.Username, c.Param("username"), req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toReviewResponse(review))
}

// List handles GET /v1/sellers/:username/reviews — public.
//
// @Summary      List a seller's reviews
// @Tags         reviews
// @Produce      json
// @Param        username  path      string  true  "Seller username"
// @Success      200       {array}   reviewResponse
// @Router       /v1/sellers/{username}/reviews [get]
func (h *ReviewHandler) List(c echo.Context) error {
	reviews, err := h.service.ListSellerReviews(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	out := make([]reviewResponse, len(reviews))
	for i, r := range reviews {
		out[i] = toReviewResponse(r)
	}
	return c.JSON(http.StatusOK, out)
}

// Delete handles DELETE /v1/reviews/:id — the author or an admin.
//
// @Summary      Delete a review
// @Tags         reviews
// @Security     BearerAuth
// @Param        id  path  string  true  "Review ID"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.service.DeleteReview(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
