package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/mrkunal0430/hrms/internal/domain/attendance"
	"github.com/mrkunal0430/hrms/internal/handler/http/response"
	"github.com/mrkunal0430/hrms/internal/pkg/jwt"
	attendanceService "github.com/mrkunal0430/hrms/internal/service/attendance"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	service    *attendanceService.Service
	jwtService jwt.Service
	loc        *time.Location
}

func NewAttendanceHandler(service *attendanceService.Service, jwtService jwt.Service, loc *time.Location) AttendanceHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &attendanceHandlerImpl{
		service:    service,
		jwtService: jwtService,
		loc:        loc,
	}
}

// CheckIn implements AttendanceHandler. The event timestamp is the server's
// clock; only the location sample is taken from the client.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	identity, err := h.jwtService.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid or missing token")
		return
	}

	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.service.CheckIn(r.Context(), identity.EmployeeID, time.Now(), req.Sample())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", attendance.ToResponse(record))
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	identity, err := h.jwtService.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid or missing token")
		return
	}

	var req attendance.CheckOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	record, err := h.service.CheckOut(r.Context(), identity.EmployeeID, time.Now(), req.Sample())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", attendance.ToResponse(record))
}

// ListMy implements AttendanceHandler. Defaults to the current month when no
// range is given.
func (h *attendanceHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	identity, err := h.jwtService.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid or missing token")
		return
	}

	now := time.Now().In(h.loc)
	filter := attendance.ListFilter{
		From:  time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc),
		To:    time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, h.loc).AddDate(0, 1, -1),
		Page:  parseIntQuery(r, "page", 1),
		Limit: parseIntQuery(r, "limit", 31),
	}
	if from := r.URL.Query().Get("from"); from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, h.loc)
		if err != nil {
			response.BadRequest(w, "Invalid 'from' date", nil)
			return
		}
		filter.From = t
	}
	if to := r.URL.Query().Get("to"); to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, h.loc)
		if err != nil {
			response.BadRequest(w, "Invalid 'to' date", nil)
			return
		}
		filter.To = t
	}

	records, total, err := h.service.ListByEmployee(r.Context(), identity.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	items := make([]attendance.RecordResponse, len(records))
	for i, rec := range records {
		items[i] = attendance.ToResponse(rec)
	}

	response.SuccessWithMeta(w, items, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages(total, filter.Limit),
	})
}

func parseIntQuery(r *http.Request, key string, def int) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func totalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
