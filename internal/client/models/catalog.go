package models

import (
	"time"

	"github.com/dmitrijs2005/truekicks/internal/money"
)

type Product struct {
	ID           ID          `json:"id"`
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	Price        money.Money `json:"price"`
	ImageURL     string      `json:"image_url"`
	Description  string      `json:"description,omitempty"`
	DetailImages []string    `json:"detail_images,omitempty"`
}

type Category struct {
	ID    ID     `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji,omitempty"`
}

// OrderRequest is the checkout payload sent to POST /api/orders.
type OrderRequest struct {
	RequestID  string      `json:"request_id,omitempty"`
	UserID     ID          `json:"user_id"`
	FullName   string      `json:"full_name"`
	Address    string      `json:"address"`
	Phone      string      `json:"phone,omitempty"`
	TotalPrice money.Money `json:"total_price"`
	Items      []CartItem  `json:"items"`
}

type Order struct {
	ID         ID          `json:"id"`
	UserID     ID          `json:"user_id"`
	FullName   string      `json:"full_name"`
	Address    string      `json:"address"`
	Phone      string      `json:"phone"`
	TotalPrice money.Money `json:"total_price"`
	Items      []CartItem  `json:"items"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}
