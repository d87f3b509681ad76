package http

import (
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/overtime"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type OvertimeHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Windows(w http.ResponseWriter, r *http.Request)
}

type overtimeHandlerImpl struct {
	overtimeService overtime.Service
}

func NewOvertimeHandler(overtimeService overtime.Service) OvertimeHandler {
	return &overtimeHandlerImpl{overtimeService: overtimeService}
}

// Submit handles POST /overtime-requests
func (h *overtimeHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}

	var req overtime.SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CompanyID = c.CompanyID
	req.EmployeeID = c.EmployeeID

	created, err := h.overtimeService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request submitted", overtime.NewRequestResponse(created))
}

// GetMyRequests handles GET /overtime-requests/my
func (h *overtimeHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}
	h.list(w, r, c.CompanyID, c.EmployeeID)
}

// ListRequests handles GET /overtime-requests
func (h *overtimeHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}
	h.list(w, r, c.CompanyID, r.URL.Query().Get("employee_id"))
}

func (h *overtimeHandlerImpl) list(w http.ResponseWriter, r *http.Request, companyID, employeeID string) {
	q := r.URL.Query()
	filter, err := overtime.ParseListFilter(companyID, employeeID, q.Get("status"), q.Get("start_date"), q.Get("end_date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	requests, err := h.overtimeService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]overtime.RequestResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, overtime.NewRequestResponse(req))
	}
	response.Success(w, out)
}

// Approve handles POST /overtime-requests/{id}/approve
func (h *overtimeHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	req, ok := h.reviewRequest(w, r)
	if !ok {
		return
	}

	approved, err := h.overtimeService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request approved", overtime.NewRequestResponse(approved))
}

// Reject handles POST /overtime-requests/{id}/reject
func (h *overtimeHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	req, ok := h.reviewRequest(w, r)
	if !ok {
		return
	}

	rejected, err := h.overtimeService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Overtime request rejected", overtime.NewRequestResponse(rejected))
}

// reviewRequest accepts an empty body; manager notes are optional.
func (h *overtimeHandlerImpl) reviewRequest(w http.ResponseWriter, r *http.Request) (overtime.ReviewRequest, bool) {
	c, ok := claims(w, r)
	if !ok {
		return overtime.ReviewRequest{}, false
	}

	var req overtime.ReviewRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return overtime.ReviewRequest{}, false
	}
	req.ID = chi.URLParam(r, "id")
	req.CompanyID = c.CompanyID
	req.ManagerID = c.EmployeeID
	return req, true
}

// Windows handles GET /overtime/windows/{employeeID}/{date}
func (h *overtimeHandlerImpl) Windows(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}

	req := overtime.ResolveRequest{
		CompanyID:  c.CompanyID,
		EmployeeID: chi.URLParam(r, "employeeID"),
		Date:       chi.URLParam(r, "date"),
	}

	windows, err := h.overtimeService.ResolveWindows(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, overtime.NewResolvedWindowsResponse(windows))
}
