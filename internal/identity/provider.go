// Package identity is the client-side boundary to the identity provider.
package identity

import "context"

// User is a signed-in identity. Token is the ID token sent to the API.
type User struct {
	Email string
	Token string
}

// Provider signs users in and out and reports auth state changes.
type Provider interface {
	SignIn(ctx context.Context) (*User, error)
	SignOut(ctx context.Context) error
	// OnAuthStateChanged calls fn with the current user (nil when signed
	// out) right away and again after every change, until unsubscribe is
	// called.
	OnAuthStateChanged(fn func(*User)) (unsubscribe func())
}
