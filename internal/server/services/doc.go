// Package services contains the storefront business logic behind the REST
// handlers: catalog reads with image URL resolution, account registration
// and login, and order placement.
package services
