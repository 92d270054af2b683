// Package rest exposes the storefront HTTP API on top of gin.
//
// Routes:
//
//	GET  /                          liveness text
//	GET  /api/products              all rows of the products table
//	GET  /api/sneakers              all rows of the sneakers table
//	GET  /api/apparel               all rows of the apparel table
//	GET  /api/categories            all categories
//	GET  /api/detail/:table/:id     one product row
//	POST /api/register              create an account
//	POST /api/login                 verify credentials, issue an access token
//	POST /api/orders                place an order
//	GET  /api/orders/user/:id       order history, bearer token required
package rest
