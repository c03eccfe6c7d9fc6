package history

import "time"

// Line is one recorded cart line of a placed order.
type Line struct {
	Name     string  `json:"name"`
	Qty      int     `json:"qty"`
	Subtotal float64 `json:"subtotal"`
}

// Order is a locally recorded, successfully placed order. It is a display
// record only; the backend remains the authority on pricing.
type Order struct {
	ID            string
	PlacedAt      time.Time
	CustomerName  string
	Mobile        string
	Address       string
	PaymentMethod string
	Total         float64
	Lines         []Line
}
