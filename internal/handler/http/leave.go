package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	CreateRequest(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ApproveRequest(w http.ResponseWriter, r *http.Request)
	RejectRequest(w http.ResponseWriter, r *http.Request)
	GetMyBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// CreateRequest handles POST /leave-requests
func (l *LeaveHandlerImpl) CreateRequest(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}

	var req leave.SubmitRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CompanyID = c.CompanyID
	req.EmployeeID = c.EmployeeID

	created, err := l.leaveService.Submit(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", leave.NewRequestResponse(created))
}

// GetMyRequests handles GET /leave-requests/my
func (l *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	req := leave.ListRequest{
		CompanyID:  c.CompanyID,
		EmployeeID: c.EmployeeID,
		StartDate:  q.Get("start_date"),
		EndDate:    q.Get("end_date"),
		Status:     q.Get("status"),
	}

	requests, err := l.leaveService.List(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	out := make([]leave.RequestResponse, 0, len(requests))
	for _, req := range requests {
		out = append(out, leave.NewRequestResponse(req))
	}
	response.Success(w, out)
}

// ApproveRequest handles POST /leave-requests/{id}/approve
func (l *LeaveHandlerImpl) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := l.reviewRequest(w, r)
	if !ok {
		return
	}

	approved, err := l.leaveService.Approve(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", leave.NewRequestResponse(approved))
}

// RejectRequest handles POST /leave-requests/{id}/reject
func (l *LeaveHandlerImpl) RejectRequest(w http.ResponseWriter, r *http.Request) {
	req, ok := l.reviewRequest(w, r)
	if !ok {
		return
	}

	rejected, err := l.leaveService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", leave.NewRequestResponse(rejected))
}

func (l *LeaveHandlerImpl) reviewRequest(w http.ResponseWriter, r *http.Request) (leave.ReviewRequest, bool) {
	c, ok := claims(w, r)
	if !ok {
		return leave.ReviewRequest{}, false
	}

	var req leave.ReviewRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return leave.ReviewRequest{}, false
	}
	req.ID = chi.URLParam(r, "id")
	req.CompanyID = c.CompanyID
	req.ManagerID = c.EmployeeID
	return req, true
}

// GetMyBalance handles GET /leave/balance/my. The year defaults to the
// current one.
func (l *LeaveHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}

	year, err := queryInt(r, "year", time.Now().Year())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	balance, err := l.leaveService.Balance(r.Context(), leave.BalanceRequest{
		CompanyID:  c.CompanyID,
		EmployeeID: c.EmployeeID,
		Year:       year,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, leave.NewBalanceResponse(balance))
}
