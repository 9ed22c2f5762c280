// Package delivery defines the contract every transport (HTTP today) must
// satisfy to be started by the composition root.
package delivery

import "context"

// Delivery is a serving surface managed by the application lifecycle.
type Delivery interface {
	Serve(ctx context.Context) error
}
