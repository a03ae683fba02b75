package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type createCarRequest struct {
	Make        string `json:"make"         validate:"required"`
	Model       string `json:"model"        validate:"required"`
	Year        int    `json:"year"         validate:"required,min=1900,max=2100"`
	PriceCents  int64  `json:"price_cents"  validate:"required,gt=0"`
	MileageKm   int    `json:"mileage_km"   validate:"min=0"`
	Description string `json:"description"`
}

type updateCarRequest struct {
	PriceCents  *int64  `json:"price_cents,omitempty"  validate:"omitempty,gt=0"`
	MileageKm   *int    `json:"mileage_km,omitempty"   validate:"omitempty,min=0"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"       validate:"omitempty,oneof=available reserved sold"`
}

type carLinks struct {
	Self   string `json:"self"`
	Images string `json:"images"`
}

// carResponse is the transport view of a listing, intentionally separate
// from the domain type so the JSON contract is not coupled to internal
// changes.
type carResponse struct {
	ID          string    `json:"id"`
	Owner       string    `json:"owner"`
	Make        string    `json:"make"`
	Model       string    `json:"model"`
	Year        int       `json:"year"`
	PriceCents  int64     `json:"price_cents"`
	MileageKm   int       `json:"mileage_km"`
	Status      string    `json:"status"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	Links       carLinks  `json:"_links"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listCarsResponse struct {
	Data       []carResponse      `json:"data"`
	Pagination paginationResponse `json:"pagination"`
}
