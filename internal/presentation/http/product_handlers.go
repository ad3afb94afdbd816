package httppresentation

import (
	"net/http"

	appProduct "github.com/Zhima-Mochi/minishop-checkout/internal/application/product"
	domainProduct "github.com/Zhima-Mochi/minishop-checkout/internal/domain/product"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type createProductRequest struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type changePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

type productResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

func toProductResponse(p *domainProduct.Product) productResponse {
	return productResponse{ID: p.ID(), Name: p.Name(), Price: p.Price()}
}

func (h *Handler) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := h.products.Create(r.Context(), appProduct.CreateInput{ID: req.ID, Name: req.Name, Price: req.Price})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	w.Header().Set("Location", "/products/"+p.ID())
	writeJSON(w, http.StatusCreated, toProductResponse(p))
}

func (h *Handler) handleListProducts(w http.ResponseWriter, r *http.Request) {
	all, err := h.products.List(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	resp := make([]productResponse, 0, len(all))
	for _, p := range all {
		resp = append(resp, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}

func (h *Handler) handleChangeProductPrice(w http.ResponseWriter, r *http.Request) {
	var req changePriceRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p, err := h.products.ChangePrice(r.Context(), chi.URLParam(r, "id"), req.Price)
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(p))
}
