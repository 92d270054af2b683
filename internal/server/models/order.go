package models

import (
	"encoding/json"
	"time"

	"github.com/dmitrijs2005/truekicks/internal/money"
)

// Order is a placed order. Items is the cart snapshot stored as jsonb.
type Order struct {
	ID         int64           `json:"id"`
	UserID     int64           `json:"user_id"`
	FullName   string          `json:"full_name"`
	Address    string          `json:"address"`
	Phone      string          `json:"phone"`
	TotalPrice money.Money     `json:"total_price"`
	Items      json.RawMessage `json:"items"`
	Status     string          `json:"status"`
	RequestID  string          `json:"request_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
