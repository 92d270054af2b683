// Package models holds the client-side data shapes: the stored user
// identity, cart and wishlist line items and the catalog payloads returned
// by the storefront API.
package models

import "strings"

// Identity is the JSON blob kept under the "user" key of the durable store.
type Identity struct {
	ID       ID     `json:"id,omitempty"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Token    string `json:"token,omitempty"`
}

// GuestEmail is the email of the synthetic offline identity.
const GuestEmail = "guest@truekicks.com"

// GuestIdentity is written over the stored identity while offline.
var GuestIdentity = Identity{FullName: "Guest", Email: GuestEmail}

// IsGuest reports whether the identity is a guest one. Any email containing
// "guest" qualifies, case-sensitively.
func (i Identity) IsGuest() bool {
	return strings.Contains(i.Email, "guest")
}
