// Package cli provides the interactive TrueKicks storefront client.
//
// It wires configuration, the local SQLite store, the cart and wishlist
// containers, the offline override with its connectivity watcher and the
// storefront services, then runs a REPL on top of them.
//
// Key features:
//   - Register / Login / Logout / continue as guest
//   - Browse products, sneakers, apparel and categories, show a product
//   - Cart: add, remove, change quantity, clear, totals
//   - Wishlist: like, unlike, list
//   - Checkout and order history
//
// While the server is unreachable the stored identity is swapped for a guest
// one, so cart and wishlist commands become no-ops until it returns.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
