package models

import "time"

// Specifications holds the descriptive attributes shown on a product page.
type Specifications struct {
	Brand    string `json:"brand" bson:"brand"`
	Color    string `json:"color" bson:"color"`
	Weight   string `json:"weight" bson:"weight"`
	Warranty string `json:"warranty" bson:"warranty"`
}

// Product represents a product in the store.
type Product struct {
	ID             string         `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name           string         `json:"name" bson:"name" gorm:"type:varchar(200);not null" validate:"required,max=200"`
	Price          float64        `json:"price" bson:"price" gorm:"not null" validate:"required,gt=0"`
	Image          string         `json:"image" bson:"image" gorm:"not null" validate:"required"`
	Description    string         `json:"description" bson:"description" validate:"omitempty,max=2000"`
	Category       string         `json:"category" bson:"category" gorm:"type:varchar(100);index"`
	Stock          int            `json:"stock" bson:"stock" gorm:"not null" validate:"gte=0"`
	Rating         float64        `json:"rating" bson:"rating" validate:"gte=0,lte=5"`
	Reviews        int            `json:"reviews" bson:"reviews" validate:"gte=0"`
	Specifications Specifications `json:"specifications" bson:"specifications" gorm:"embedded;embeddedPrefix:spec_"`
	Features       []string       `json:"features" bson:"features" gorm:"serializer:json"`
	CreatedAt      time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// Defaults applied to products created without these fields.
const (
	DefaultCategory = "Electronics"
	DefaultStock    = 50
	DefaultRating   = 4.5
)
