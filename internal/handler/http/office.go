package http

import (
	"net/http"

	"github.com/mrkunal0430/hrms/internal/domain/office"
	"github.com/mrkunal0430/hrms/internal/handler/http/response"
)

type OfficeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type officeHandlerImpl struct {
	repo office.Repository
}

func NewOfficeHandler(repo office.Repository) OfficeHandler {
	return &officeHandlerImpl{repo: repo}
}

type officeResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	IsActive     bool    `json:"is_active"`
}

// List implements OfficeHandler.
func (h *officeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	offices, err := h.repo.List(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]officeResponse, len(offices))
	for i, o := range offices {
		items[i] = officeResponse{
			ID:           o.ID,
			Name:         o.Name,
			Latitude:     o.Latitude,
			Longitude:    o.Longitude,
			RadiusMeters: o.RadiusMeters,
			IsActive:     o.IsActive,
		}
	}

	response.Success(w, items)
}
