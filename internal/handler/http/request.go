package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mrkunal0430/hrms/internal/domain/request"
	"github.com/mrkunal0430/hrms/internal/handler/http/response"
	"github.com/mrkunal0430/hrms/internal/pkg/jwt"
	"github.com/mrkunal0430/hrms/internal/service/approval"
)

type RequestHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	ListMy(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
}

type requestHandlerImpl struct {
	engine     *approval.Engine
	jwtService jwt.Service
}

func NewRequestHandler(engine *approval.Engine, jwtService jwt.Service) RequestHandler {
	return &requestHandlerImpl{
		engine:     engine,
		jwtService: jwtService,
	}
}

// Submit implements RequestHandler.
func (h *requestHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	identity, err := h.jwtService.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid or missing token")
		return
	}

	var req request.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.engine.Submit(r.Context(), identity.EmployeeID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Request submitted", request.ToResponse(created))
}

// ListMy implements RequestHandler.
func (h *requestHandlerImpl) ListMy(w http.ResponseWriter, r *http.Request) {
	identity, err := h.jwtService.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid or missing token")
		return
	}

	filter, ok := parseRequestFilter(w, r)
	if !ok {
		return
	}

	requests, total, err := h.engine.ListByEmployee(r.Context(), identity.EmployeeID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeRequestList(w, requests, total, filter)
}

// List implements RequestHandler. Reviewer view across all employees.
func (h *requestHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter, ok := parseRequestFilter(w, r)
	if !ok {
		return
	}

	requests, total, err := h.engine.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	writeRequestList(w, requests, total, filter)
}

// Approve implements RequestHandler.
func (h *requestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, request.DecisionApprove)
}

// Reject implements RequestHandler.
func (h *requestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, request.DecisionReject)
}

func (h *requestHandlerImpl) review(w http.ResponseWriter, r *http.Request, decision request.ReviewDecision) {
	identity, err := h.jwtService.IdentityFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid or missing token")
		return
	}

	requestID := chi.URLParam(r, "id")

	var req request.ReviewRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	reviewed, err := h.engine.Review(r.Context(), requestID, identity.UserID, decision, req.Comment)
	if err != nil {
		var recompute *request.RecomputationError
		if errors.As(err, &recompute) {
			// The decision is persisted; recomputation retries asynchronously.
			response.SuccessWithMessage(w, "Decision recorded; attendance recomputation queued for retry", request.ToResponse(reviewed))
			return
		}
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Decision recorded", request.ToResponse(reviewed))
}

func parseRequestFilter(w http.ResponseWriter, r *http.Request) (request.ListFilter, bool) {
	filter := request.ListFilter{
		Page:  parseIntQuery(r, "page", 1),
		Limit: parseIntQuery(r, "limit", 20),
	}

	if kind := r.URL.Query().Get("kind"); kind != "" {
		k := request.Kind(kind)
		switch k {
		case request.KindLeave, request.KindWFH, request.KindRegularization:
			filter.Kind = &k
		default:
			response.BadRequest(w, "Invalid 'kind' filter", nil)
			return filter, false
		}
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := request.Status(status)
		switch s {
		case request.StatusPending, request.StatusApproved, request.StatusRejected:
			filter.Status = &s
		default:
			response.BadRequest(w, "Invalid 'status' filter", nil)
			return filter, false
		}
	}

	return filter, true
}

func writeRequestList(w http.ResponseWriter, requests []request.Request, total int64, filter request.ListFilter) {
	items := make([]request.RequestResponse, len(requests))
	for i, req := range requests {
		items[i] = request.ToResponse(req)
	}

	response.SuccessWithMeta(w, items, &response.Meta{
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalItems: total,
		TotalPages: totalPages(total, filter.Limit),
	})
}
