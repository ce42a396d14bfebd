package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mrkunal0430/hrms/internal/domain/holiday"
	"github.com/mrkunal0430/hrms/internal/handler/http/response"
)

type HolidayHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	ListByYear(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type holidayHandlerImpl struct {
	repo holiday.Repository
}

func NewHolidayHandler(repo holiday.Repository) HolidayHandler {
	return &holidayHandlerImpl{repo: repo}
}

// Create implements HolidayHandler.
func (h *holidayHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	created, err := h.repo.Create(r.Context(), holiday.Holiday{
		ID:         uuid.NewString(),
		Date:       date,
		Title:      req.Title,
		IsOptional: req.IsOptional,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday created", holiday.ToResponse(created))
}

// ListByYear implements HolidayHandler. Defaults to the current year.
func (h *holidayHandlerImpl) ListByYear(w http.ResponseWriter, r *http.Request) {
	year := parseIntQuery(r, "year", time.Now().Year())

	holidays, err := h.repo.ListByYear(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]holiday.HolidayResponse, len(holidays))
	for i, hol := range holidays {
		items[i] = holiday.ToResponse(hol)
	}

	response.Success(w, items)
}

// Delete implements HolidayHandler.
func (h *holidayHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday deleted", nil)
}
