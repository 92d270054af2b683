// Package services contains the application services of the TrueKicks CLI:
// authentication and the stored identity, the catalog with its offline
// cache, and checkout with order history.
package services
