// Package models holds the storefront rows as read from and written to
// Postgres. JSON tags match the REST API payloads.
package models

import "github.com/dmitrijs2005/truekicks/internal/money"

// Product is a row of the products, sneakers or apparel table.
type Product struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	Category     string      `json:"category"`
	Price        money.Money `json:"price"`
	ImageURL     string      `json:"image_url"`
	Description  string      `json:"description"`
	DetailImages []string    `json:"detail_images"`
}

type Category struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Emoji string `json:"emoji"`
}
