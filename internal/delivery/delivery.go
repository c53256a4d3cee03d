// Package delivery defines the contract shared by all server surfaces.
package delivery

import "context"

// Delivery is a long-running server started by the application entry point.
// Implementations register their own fx shutdown hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
