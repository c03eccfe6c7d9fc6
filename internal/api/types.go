package api

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Category is a named grouping of items. The upstream catalog is not
// consistent about its field name, so unmarshalling accepts
// {"categoryName": ...}, {"name": ...} or a bare JSON string.
type Category struct {
	Name string
}

func (c *Category) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		return json.Unmarshal(data, &c.Name)
	}

	var raw struct {
		CategoryName string `json:"categoryName"`
		Name         string `json:"name"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Name = raw.CategoryName
	if c.Name == "" {
		c.Name = raw.Name
	}
	return nil
}

// Item is a purchasable catalog entry. ID resolves from "_id", then "id",
// then the item name. Price is nil when the catalog carries no price.
type Item struct {
	ID    string
	Name  string
	Price *float64
}

func (it *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		MongoID  json.RawMessage `json:"_id"`
		ID       json.RawMessage `json:"id"`
		ItemName string          `json:"itemName"`
		Price    *float64        `json:"price"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	it.Name = raw.ItemName
	it.Price = raw.Price
	it.ID = rawID(raw.MongoID)
	if it.ID == "" {
		it.ID = rawID(raw.ID)
	}
	if it.ID == "" {
		it.ID = it.Name
	}
	return nil
}

// rawID renders a JSON id value (string or number) as a string.
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}

// CartLine is a priced, quantified cart entry as returned by the backend.
// The backend owns all arithmetic; the client only displays these values.
type CartLine struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Qty      int     `json:"qty"`
	Subtotal float64 `json:"subtotal"`
}

// User is the display copy of the registered customer.
type User struct {
	Name    string `json:"name"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
}

// Session is the backend's answer to a successful registration.
type Session struct {
	SessionID string `json:"session_id"`
	User      User   `json:"user"`
}

// CartView is the backend's answer to a cart view request.
type CartView struct {
	Cart []CartLine `json:"cart"`
	User User       `json:"user"`
}

// CreateSessionRequest registers a customer and opens a session.
type CreateSessionRequest struct {
	Name        string `json:"name"`
	Mobile      string `json:"mobile"`
	Address     string `json:"address"`
	CountryCode string `json:"country_code"`
}

// AddToCartRequest adds qty units of an item to the session cart.
type AddToCartRequest struct {
	SessionID string  `json:"session_id"`
	ItemName  string  `json:"itemName"`
	Price     float64 `json:"price"`
	Qty       int     `json:"qty"`
}

// RemoveFromCartRequest removes qty units of an item from the session cart.
type RemoveFromCartRequest struct {
	SessionID string `json:"session_id"`
	ItemName  string `json:"itemName"`
	Qty       int    `json:"qty"`
}

// CheckoutRequest finalizes the session's cart.
type CheckoutRequest struct {
	SessionID     string `json:"session_id"`
	PaymentMethod string `json:"paymentMethod"`
}
