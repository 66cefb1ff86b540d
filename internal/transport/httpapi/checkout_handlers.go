package httpapi

import (
	"errors"
	"net/http"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
	"github.com/vladislavdragonenkov/shopcart/internal/service/checkout"
)

type quoteRequest struct {
	Shipping string `json:"shipping"`
}

type placeOrderRequest struct {
	Form checkout.Form `json:"form"`
}

type orderResponse struct {
	Order      domain.PlacedOrder `json:"order"`
	TotalLabel string             `json:"total_label"`
}

func (s *server) quote(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	method, err := domain.ParseShippingMethod(req.Shipping)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, s.quoteView(s.checkout.Quote(s.cartFor(r), method)))
}

func (s *server) placeOrder(w http.ResponseWriter, r *http.Request) {
	var req placeOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	order, err := s.checkout.PlaceOrder(s.cartFor(r), req.Form)
	switch {
	case err == nil:
	case respondValidation(w, err):
		return
	case errors.Is(err, domain.ErrCartEmpty):
		respondError(w, http.StatusConflict, "Your cart is empty")
		return
	default:
		s.logger.WithError(err).Error("place order failed")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusCreated, orderResponse{
		Order:      order,
		TotalLabel: s.formatter.Format(order.Quote.Total),
	})
}
