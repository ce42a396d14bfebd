package http

import (
	"net/http"

	"github.com/mrkunal0430/hrms/internal/handler/http/response"
	dashboardService "github.com/mrkunal0430/hrms/internal/service/dashboard"
)

type DashboardHandler interface {
	TodayStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	service *dashboardService.Service
}

func NewDashboardHandler(service *dashboardService.Service) DashboardHandler {
	return &dashboardHandlerImpl{service: service}
}

// TodayStats implements DashboardHandler.
func (h *dashboardHandlerImpl) TodayStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.TodayStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}
