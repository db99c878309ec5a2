// Package delivery defines the inbound adapters that expose the usecases.
package delivery

import "context"

// Delivery is a long-running inbound adapter started by the application entrypoint.
type Delivery interface {
	Serve(ctx context.Context) error
}
