// Package catalog holds the demonstration products loaded into an empty store.
package catalog

import "storefront/internal/models"

const imageQuery = "?auto=format&fit=crop&q=80&w=1170"

// Products returns a fresh copy of the demonstration catalog. IDs are left empty
// so that the repository assigns them.
func Products() []models.Product {
	return []models.Product{
		{
			Name:        "Wireless Headphones",
			Price:       2999,
			Category:    models.DefaultCategory,
			Image:       "https://images.unsplash.com/photo-1609081219090-a6d81d3085bf" + imageQuery,
			Description: "Over-ear headphones with active noise cancellation and 30 hour battery life.",
			Stock:       models.DefaultStock,
			Rating:      4.6,
			Reviews:     128,
			Specifications: models.Specifications{
				Brand: "SoundCore", Color: "Black", Weight: "250g", Warranty: "1 year",
			},
			Features: []string{"Active noise cancellation", "Bluetooth 5.3", "USB-C charging"},
		},
		{
			Name:        "Smart Watch",
			Price:       4999,
			Category:    models.DefaultCategory,
			Image:       "https://images.unsplash.com/photo-1579586337278-3befd40fd17a" + imageQuery,
			Description: "Fitness tracking, heart-rate monitoring and notifications on your wrist.",
			Stock:       models.DefaultStock,
			Rating:      4.4,
			Reviews:     86,
			Specifications: models.Specifications{
				Brand: "Pulse", Color: "Silver", Weight: "45g", Warranty: "1 year",
			},
			Features: []string{"Heart-rate monitor", "Water resistant", "7 day battery"},
		},
		{
			Name:        "Bluetooth Speaker",
			Price:       1999,
			Category:    models.DefaultCategory,
			Image:       "https://images.unsplash.com/photo-1589001181560-a8df1800e501" + imageQuery,
			Description: "Portable speaker with deep bass and 12 hour playback.",
			Stock:       models.DefaultStock,
			Rating:      4.5,
			Reviews:     64,
			Specifications: models.Specifications{
				Brand: "Boomly", Color: "Blue", Weight: "540g", Warranty: "6 months",
			},
			Features: []string{"IPX7 waterproof", "Stereo pairing"},
		},
		{
			Name:        "Gaming Mouse",
			Price:       1499,
			Category:    models.DefaultCategory,
			Image:       "https://images.unsplash.com/photo-1629429408209-1f912961dbd8" + imageQuery,
			Description: "Lightweight mouse with a 16000 DPI sensor and programmable buttons.",
			Stock:       models.DefaultStock,
			Rating:      4.7,
			Reviews:     203,
			Specifications: models.Specifications{
				Brand: "Aim", Color: "Black", Weight: "68g", Warranty: "2 years",
			},
			Features: []string{"16000 DPI", "RGB lighting", "6 programmable buttons"},
		},
		{
			Name:        "Keyboard",
			Price:       999,
			Category:    models.DefaultCategory,
			Image:       "https://images.unsplash.com/photo-1601445638532-3c6f6c3aa1d6" + imageQuery,
			Description: "Compact mechanical keyboard with hot-swappable switches.",
			Stock:       models.DefaultStock,
			Rating:      4.3,
			Reviews:     57,
			Specifications: models.Specifications{
				Brand: "Keyz", Color: "White", Weight: "700g", Warranty: "1 year",
			},
			Features: []string{"Hot-swappable switches", "75% layout"},
		},
		{
			Name:        "USB-C Charger",
			Price:       1299,
			Category:    models.DefaultCategory,
			Image:       "https://images.unsplash.com/photo-1595756630452-736bc8ef3693" + imageQuery,
			Description: "65W GaN charger for laptops, tablets and phones.",
			Stock:       models.DefaultStock,
			Rating:      4.5,
			Reviews:     91,
			Specifications: models.Specifications{
				Brand: "VoltX", Color: "White", Weight: "110g", Warranty: "18 months",
			},
			Features: []string{"65W output", "Two USB-C ports", "Foldable plug"},
		},
	}
}
