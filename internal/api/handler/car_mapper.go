package handler

import (
	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

func toCarResponse(car *domain.Car) carResponse {
	return carResponse{
		ID:          car.ID,
		Owner:       car.Owner,
		Make:        car.Make,
		Model:       car.Model,
		Year:        car.Year,
		PriceCents:  car.PriceCents,
		MileageKm:   car.MileageKm,
		Status:      string(car.Status),
		Description: car.Description,
		CreatedAt:   car.CreatedAt,
		Links: carLinks{
			Self:   "/v1/cars/" + car.ID,
			Images: "/v1/cars/" + car.ID + "/images",
		},
	}
}

func toListCarsResponse(result *ports.ListCarsResult) listCarsResponse {
	items := make([]carResponse, len(result.Items))
	for i, car := range result.Items {
		items[i] = toCarResponse(car)
	}
	return listCarsResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	}
}
