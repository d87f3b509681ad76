package http

import (
	"net/http"

	"github.com/cmlabs-hris/workforce-backend-go/internal/domain/compoff"
	"github.com/cmlabs-hris/workforce-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CompOffHandler interface {
	Grant(w http.ResponseWriter, r *http.Request)
	Use(w http.ResponseWriter, r *http.Request)
	GetMyBalance(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
}

type compOffHandlerImpl struct {
	compOffService compoff.CompOffService
}

func NewCompOffHandler(compOffService compoff.CompOffService) CompOffHandler {
	return &compOffHandlerImpl{compOffService: compOffService}
}

// Grant handles POST /comp-off/grant
func (h *compOffHandlerImpl) Grant(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}

	var req compoff.GrantRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CompanyID = c.CompanyID
	req.GrantedBy = c.EmployeeID

	entry, err := h.compOffService.Grant(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Comp-off granted", compoff.NewEntryResponse(entry))
}

// Use handles POST /comp-off/use
func (h *compOffHandlerImpl) Use(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}

	var req compoff.UseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.CompanyID = c.CompanyID
	req.EmployeeID = c.EmployeeID

	entry, err := h.compOffService.Use(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Comp-off used", compoff.NewEntryResponse(entry))
}

// GetMyBalance handles GET /comp-off/balance/my
func (h *compOffHandlerImpl) GetMyBalance(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}
	h.balance(w, r, c.CompanyID, c.EmployeeID)
}

// GetBalance handles GET /comp-off/balance/{employeeID}
func (h *compOffHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	c, ok := claims(w, r)
	if !ok {
		return
	}
	h.balance(w, r, c.CompanyID, chi.URLParam(r, "employeeID"))
}

func (h *compOffHandlerImpl) balance(w http.ResponseWriter, r *http.Request, companyID, employeeID string) {
	balance, err := h.compOffService.Balance(r.Context(), compoff.BalanceRequest{
		CompanyID:  companyID,
		EmployeeID: employeeID,
		AsOf:       r.URL.Query().Get("as_of"),
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, compoff.NewBalanceResponse(balance))
}
