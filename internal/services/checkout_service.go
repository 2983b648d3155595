package services

import (
	"time"

	"storefront/internal/apperror"
	"storefront/internal/pricing"
)

// CheckoutLine is a client-supplied line of the legacy checkout.
type CheckoutLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

func (l CheckoutLine) UnitPrice() float64 { return l.Price }
func (l CheckoutLine) Quantity() int      { return l.Qty }

// Receipt is the mock payment confirmation.
type Receipt struct {
	Total     float64   `json:"total"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
}

// CheckoutService produces receipts without touching storage.
type CheckoutService struct {
	now func() time.Time
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService() *CheckoutService {
	return &CheckoutService{now: time.Now}
}

// Receipt totals the supplied lines.
func (s *CheckoutService) Receipt(lines []CheckoutLine) (*Receipt, error) {
	if len(lines) == 0 {
		return nil, apperror.Validation("Cart is empty")
	}
	return &Receipt{
		Total:     pricing.Sum(lines),
		Timestamp: s.now().UTC(),
		Message:   "Checkout successful! (mock payment)",
	}, nil
}
