package services

import (
	"encoding/json"
	"log"
	"time"

	"storefront/internal/models"
)

// Routing keys of order lifecycle events.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusUpdated = "order.status_updated"
	EventOrderCancelled     = "order.cancelled"
)

// EventPublisher delivers a serialized event under a routing key.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// OrderEvent is the payload published for every order lifecycle change.
type OrderEvent struct {
	Type       string             `json:"type"`
	OrderID    string             `json:"orderId"`
	UserID     string             `json:"userId"`
	Status     models.OrderStatus `json:"status"`
	Total      float64            `json:"total"`
	OccurredAt time.Time          `json:"occurredAt"`
}

// publishOrderEvent is best effort: a broker failure never fails the order operation.
func publishOrderEvent(publisher EventPublisher, eventType string, order *models.Order) {
	if publisher == nil {
		log.Printf("Event publisher is not configured. Skipping %s for order %s.", eventType, order.ID)
		return
	}

	body, err := json.Marshal(OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		log.Printf("Failed to marshal %s event for order %s: %v", eventType, order.ID, err)
		return
	}
	if err := publisher.Publish(eventType, body); err != nil {
		log.Printf("Failed to publish %s event for order %s: %v", eventType, order.ID, err)
	}
}
