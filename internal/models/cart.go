package models

import "time"

// CartItem is a persisted cart line. OwnerID scopes the line to one user's cart and
// ProductID references the live product; price is never stored here.
type CartItem struct {
	ID        string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID   string    `json:"ownerId" bson:"ownerId" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_owner_product"`
	ProductID string    `json:"productId" bson:"productId" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_owner_product"`
	Qty       int       `json:"qty" bson:"qty" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// CartLine is a cart item joined with the current state of its product.
type CartLine struct {
	ID      string   `json:"id"`
	Product *Product `json:"productId"`
	Qty     int      `json:"qty"`
}

// Cart is the view of one owner's pending purchase.
type Cart struct {
	Items []CartLine `json:"cartItems"`
	Total float64    `json:"total"`
}

// UnitPrice returns the live product price.
func (l CartLine) UnitPrice() float64 {
	if l.Product == nil {
		return 0
	}
	return l.Product.Price
}

// Quantity returns the line quantity.
func (l CartLine) Quantity() int { return l.Qty }
