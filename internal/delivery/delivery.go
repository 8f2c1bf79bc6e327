// Package delivery defines the contract every transport adapter satisfies.
package delivery

import "context"

// Delivery is a transport serving the application, started by the fx runtime.
type Delivery interface {
	Serve(ctx context.Context) error
}
