package httpapi

import (
	"net/http"

	"github.com/vladislavdragonenkov/shopcart/internal/service/cart"
)

type addItemRequest struct {
	ProductID int `json:"product_id"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

func (s *server) cartFor(r *http.Request) *cart.Store {
	return s.carts.For(profileFrom(r.Context()))
}

func (s *server) getCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.cartView(s.cartFor(r).Summary()))
}

// addItem добавляет товар по id; снимок товара берётся из каталога.
func (s *server) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "product_id must be positive")
		return
	}

	product, ok := s.fetchProduct(r.Context(), w, req.ProductID)
	if !ok {
		return
	}

	store := s.cartFor(r)
	store.AddToCart(product)
	respondJSON(w, http.StatusCreated, s.cartView(store.Summary()))
}

// updateItem задаёт количество; 0 и отрицательные значения удаляют позицию.
func (s *server) updateItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateQuantityRequest
	if err := decodeJSON(r, &req); err != nil || req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	store := s.cartFor(r)
	store.UpdateQuantity(id, *req.Quantity)
	respondJSON(w, http.StatusOK, s.cartView(store.Summary()))
}

func (s *server) removeItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	store := s.cartFor(r)
	store.RemoveFromCart(id)
	respondJSON(w, http.StatusOK, s.cartView(store.Summary()))
}

func (s *server) clearCart(w http.ResponseWriter, r *http.Request) {
	store := s.cartFor(r)
	store.ClearCart()
	respondJSON(w, http.StatusOK, s.cartView(store.Summary()))
}
