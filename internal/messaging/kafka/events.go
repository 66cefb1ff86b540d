package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"github.com/vladislavdragonenkov/shopcart/internal/domain"
)

// EventType определяет тип события
type EventType string

// EventTypeOrderPlaced — заказ оформлен (платёж симулирован).
const EventTypeOrderPlaced EventType = "order.placed"

// TopicOrderEvents — топик событий заказов витрины.
const TopicOrderEvents = "shopcart.order.events"

// OrderEventItem описывает позицию заказа в событии.
type OrderEventItem struct {
	ProductID int          `json:"product_id"`
	Title     string       `json:"title"`
	Category  string       `json:"category"`
	Quantity  int          `json:"quantity"`
	UnitPrice domain.Money `json:"unit_price"`
}

// OrderPlacedEvent — содержимое сообщения order.placed. Данные карты, кроме последних цифр, не передаются.
type OrderPlacedEvent struct {
	EventType      EventType             `json:"event_type"`
	OrderID        string                `json:"order_id"`
	Email          string                `json:"email"`
	Country        string                `json:"country"`
	ShippingMethod domain.ShippingMethod `json:"shipping_method"`
	Items          []OrderEventItem      `json:"items"`
	TotalItems     int                   `json:"total_items"`
	Subtotal       domain.Money          `json:"subtotal"`
	Shipping       domain.Money          `json:"shipping"`
	Tax            domain.Money          `json:"tax"`
	Total          domain.Money          `json:"total"`
	CardLast4      string                `json:"card_last4,omitempty"`
	PlacedAt       time.Time             `json:"placed_at"`
}

// NewOrderPlacedEvent строит событие из оформленного заказа.
func NewOrderPlacedEvent(order domain.PlacedOrder) *OrderPlacedEvent {
	items := make([]OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderEventItem{
			ProductID: item.ID,
			Title:     item.Title,
			Category:  item.Category,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	return &OrderPlacedEvent{
		EventType:      EventTypeOrderPlaced,
		OrderID:        order.ID,
		Email:          order.ShipTo.Email,
		Country:        order.ShipTo.Country,
		ShippingMethod: order.Quote.Method,
		Items:          items,
		TotalItems:     order.TotalItems(),
		Subtotal:       order.Quote.Subtotal,
		Shipping:       order.Quote.Shipping,
		Tax:            order.Quote.Tax,
		Total:          order.Quote.Total,
		CardLast4:      order.CardLast4,
		PlacedAt:       order.PlacedAt,
	}
}

// ParseOrderPlacedEvent парсит OrderPlacedEvent из сообщения
func ParseOrderPlacedEvent(message *sarama.ConsumerMessage) (*OrderPlacedEvent, error) {
	var event OrderPlacedEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal order placed event: %w", err)
	}
	if event.EventType != EventTypeOrderPlaced {
		return nil, fmt.Errorf("unexpected event type %q", event.EventType)
	}
	return &event, nil
}
