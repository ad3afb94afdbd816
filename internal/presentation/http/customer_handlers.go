package httppresentation

import (
	"net/http"

	appCustomer "github.com/Zhima-Mochi/minishop-checkout/internal/application/customer"
	domainCustomer "github.com/Zhima-Mochi/minishop-checkout/internal/domain/customer"
	"github.com/go-chi/chi/v5"
)

type addressPayload struct {
	Street string `json:"street"`
	Number int    `json:"number"`
	Zip    string `json:"zip"`
	City   string `json:"city"`
}

func (p addressPayload) input() appCustomer.AddressInput {
	return appCustomer.AddressInput{Street: p.Street, Number: p.Number, Zip: p.Zip, City: p.City}
}

type createCustomerRequest struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Address  *addressPayload `json:"address"`
	Activate bool            `json:"activate"`
}

type customerResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Active       bool            `json:"active"`
	RewardPoints int             `json:"reward_points"`
	Address      *addressPayload `json:"address,omitempty"`
}

func toCustomerResponse(c *domainCustomer.Customer) customerResponse {
	resp := customerResponse{
		ID:           c.ID(),
		Name:         c.Name(),
		Active:       c.IsActive(),
		RewardPoints: c.RewardPoints(),
	}
	if addr, ok := c.Address(); ok {
		resp.Address = &addressPayload{
			Street: addr.Street(),
			Number: addr.Number(),
			Zip:    addr.Zip(),
			City:   addr.City(),
		}
	}
	return resp
}

func (h *Handler) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req createCustomerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	in := appCustomer.CreateInput{ID: req.ID, Name: req.Name, Activate: req.Activate}
	if req.Address != nil {
		addr := req.Address.input()
		in.Address = &addr
	}
	c, err := h.customers.Create(r.Context(), in)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/customers/"+c.ID())
	writeJSON(w, http.StatusCreated, toCustomerResponse(c))
}

func (h *Handler) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	all, err := h.customers.List(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	resp := make([]customerResponse, 0, len(all))
	for _, c := range all {
		resp = append(resp, toCustomerResponse(c))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.customers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(c))
}

func (h *Handler) handleChangeCustomerAddress(w http.ResponseWriter, r *http.Request) {
	var req addressPayload
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	c, err := h.customers.ChangeAddress(r.Context(), chi.URLParam(r, "id"), req.input())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(c))
}

func (h *Handler) handleActivateCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.customers.Activate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomerResponse(c))
}
