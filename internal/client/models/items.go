package models

import "github.com/dmitrijs2005/truekicks/internal/money"

// CartItem is one cart line. Two lines with the same ID and Size are the
// same line.
type CartItem struct {
	ID       ID          `json:"id"`
	Name     string      `json:"name"`
	Price    money.Money `json:"price"`
	Image    string      `json:"image"`
	Size     string      `json:"size"`
	Quantity Quantity    `json:"quantity"`
}

// Subtotal is price times quantity.
func (c CartItem) Subtotal() money.Money {
	return c.Price.Times(int64(c.Quantity))
}

// WishlistItem is one wishlist entry, unique by ID.
type WishlistItem struct {
	ID    ID          `json:"id"`
	Name  string      `json:"name"`
	Price money.Money `json:"price"`
	Image string      `json:"image"`
}
