package httppresentation

import (
	"net/http"

	appOrder "github.com/Zhima-Mochi/minishop-checkout/internal/application/order"
	domainOrder "github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type orderItemRequest struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type createOrderRequest struct {
	ID         string             `json:"id"`
	CustomerID string             `json:"customer_id"`
	Items      []orderItemRequest `json:"items"`
}

type orderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

type orderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	Total      decimal.Decimal     `json:"total"`
	Items      []orderItemResponse `json:"items"`
}

func toOrderResponse(o *domainOrder.Order) orderResponse {
	items := o.Items()
	resp := orderResponse{
		ID:         o.ID(),
		CustomerID: o.CustomerID(),
		Total:      o.Total(),
		Items:      make([]orderItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, orderItemResponse{
			ID:        item.ID(),
			ProductID: item.ProductID(),
			Name:      item.Name(),
			Price:     item.Price(),
			Quantity:  item.Quantity(),
			Subtotal:  item.Subtotal(),
		})
	}
	return resp
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	items := make([]appOrder.CreateOrderItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, appOrder.CreateOrderItemInput{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
		})
	}

	result, err := h.createOrder.Execute(r.Context(), appOrder.CreateOrderInput{
		ID:         req.ID,
		CustomerID: req.CustomerID,
		Items:      items,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/orders/"+result.Order.ID())
	writeJSON(w, http.StatusCreated, toOrderResponse(result.Order))
}

func (h *Handler) handleListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.List(r.Context())
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	resp := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		resp = append(resp, toOrderResponse(o))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) handleAddOrderItem(w http.ResponseWriter, r *http.Request) {
	var req orderItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	o, err := h.orders.AddItem(r.Context(), chi.URLParam(r, "id"), appOrder.AddItemInput{
		ID:        req.ID,
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}

func (h *Handler) handleRemoveOrderItem(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "itemID"))
	if err != nil {
		h.writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(o))
}
