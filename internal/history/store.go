package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/taazafoods/taaza-cli/internal/db"
)

// Store persists placed orders in the local database.
type Store struct {
	db *db.DB
}

// NewStore creates an order-history store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record saves a placed order. A missing id or timestamp is filled in.
func (s *Store) Record(ctx context.Context, o Order) (*Order, error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	if o.PlacedAt.IsZero() {
		o.PlacedAt = time.Now().UTC()
	}
	lines := o.Lines
	if lines == nil {
		lines = []Line{}
	}
	encoded, err := json.Marshal(lines)
	if err != nil {
		return nil, fmt.Errorf("encoding order lines: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO orders (id, placed_at, customer_name, mobile, address, payment_method, total, items)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.PlacedAt, o.CustomerName, o.Mobile, o.Address, o.PaymentMethod, o.Total, string(encoded),
	)
	if err != nil {
		return nil, fmt.Errorf("inserting order: %w", err)
	}
	return &o, nil
}

// List returns the most recent orders, newest first. A limit of 0 means
// no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Order, error) {
	query := `SELECT id, placed_at, customer_name, mobile, address, payment_method, total, items
		 FROM orders ORDER BY placed_at DESC, id`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		var encoded string
		if err := rows.Scan(&o.ID, &o.PlacedAt, &o.CustomerName, &o.Mobile, &o.Address, &o.PaymentMethod, &o.Total, &encoded); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		if err := json.Unmarshal([]byte(encoded), &o.Lines); err != nil {
			return nil, fmt.Errorf("decoding order lines: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// Count returns the number of recorded orders.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count)
	return count, err
}
