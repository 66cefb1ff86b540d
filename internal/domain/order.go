package domain

import (
	"fmt"
	"strings"
	"time"
)

// ShippingMethod — способ доставки на шаге Shipping.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// Quote — расчёт итоговой суммы заказа.
type Quote struct {
	Subtotal Money          `json:"subtotal"`
	Method   ShippingMethod `json:"shipping_method"`
	Shipping Money          `json:"shipping"`
	Tax      Money          `json:"tax"`
	Total    Money          `json:"total"`
	// FreeShippingRemaining показывает, сколько не хватает до бесплатной доставки (0, если уже бесплатно).
	FreeShippingRemaining Money `json:"free_shipping_remaining"`
}

// ShippingAddress — контакт и адрес с шага Information.
type ShippingAddress struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
}

// PlacedOrder — результат симулированного оформления. Платёж не проводится.
type PlacedOrder struct {
	ID        string          `json:"id"`
	Items     []CartLineItem  `json:"items"`
	Quote     Quote           `json:"quote"`
	ShipTo    ShippingAddress `json:"ship_to"`
	CardLast4 string          `json:"card_last4"`
	PlacedAt  time.Time       `json:"placed_at"`
}

// TotalItems возвращает количество единиц товара в заказе.
func (o PlacedOrder) TotalItems() int {
	return CartState{Items: o.Items}.TotalItems()
}

// ParseShippingMethod разбирает способ доставки; пустая строка означает standard.
func ParseShippingMethod(raw string) (ShippingMethod, error) {
	switch ShippingMethod(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ShippingStandard:
		return ShippingStandard, nil
	case ShippingExpress:
		return ShippingExpress, nil
	default:
		return ShippingStandard, fmt.Errorf("%w: %q", ErrUnknownShippingMethod, raw)
	}
}
