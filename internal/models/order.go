package models

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every valid status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

// IsValid reports whether s is one of the known statuses.
func (s OrderStatus) IsValid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further customer-driven transition is possible.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CancellableStatuses are the statuses from which an owner may cancel.
var CancellableStatuses = []OrderStatus{StatusPending, StatusProcessing}

// Cancellable reports whether the owner may still cancel an order in this status.
func (s OrderStatus) Cancellable() bool {
	for _, st := range CancellableStatuses {
		if s == st {
			return true
		}
	}
	return false
}

func (s OrderStatus) String() string {
	return string(s)
}

// OrderItem is a snapshot of a purchased product taken when the order was placed.
type OrderItem struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	Qty       int     `json:"qty" bson:"qty"`

	// Product is the live product, attached in admin listings. Nil once deleted.
	Product *Product `json:"product,omitempty" bson:"-" gorm:"-"`
}

// ShippingAddress is where an order is delivered.
type ShippingAddress struct {
	Name   string `json:"name" bson:"name" validate:"required"`
	Email  string `json:"email" bson:"email" validate:"required"`
	Phone  string `json:"phone" bson:"phone" validate:"required"`
	Street string `json:"street" bson:"street" validate:"required"`
	City   string `json:"city" bson:"city" validate:"required"`
	Zip    string `json:"zip" bson:"zip" validate:"required"`
}

// UserSummary is the owner information attached to orders in admin listings.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Order represents a customer order. Items and Total are fixed at creation.
type Order struct {
	ID              string          `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"userId" bson:"userId" gorm:"type:varchar(36);not null;index"`
	Items           []OrderItem     `json:"items" bson:"items" gorm:"serializer:json"`
	Total           float64         `json:"total" bson:"total" gorm:"not null"`
	ShippingAddress ShippingAddress `json:"shippingAddress" bson:"shippingAddress" gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   string          `json:"paymentMethod" bson:"paymentMethod"`
	Status          OrderStatus     `json:"status" bson:"status" gorm:"type:varchar(20);not null;index"`
	CreatedAt       time.Time       `json:"createdAt" bson:"createdAt" gorm:"index"`
	UpdatedAt       time.Time       `json:"updatedAt" bson:"updatedAt"`

	Owner *UserSummary `json:"user,omitempty" bson:"-" gorm:"-"`
}

// DefaultPaymentMethod is used when checkout does not name one.
const DefaultPaymentMethod = "Credit Card"

// UnitPrice returns the snapshotted price.
func (i OrderItem) UnitPrice() float64 { return i.Price }

// Quantity returns the snapshotted quantity.
func (i OrderItem) Quantity() int { return i.Qty }
