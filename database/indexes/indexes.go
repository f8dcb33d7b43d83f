// Package indexes provides a registry of MongoDB index bootstrap steps.
//
// Uniqueness of user emails, category names, and order transaction ids is
// enforced here, at the storage layer; workflows rely on these indexes
// rejecting the second writer in a duplicate-insert race.
//
// Define a step in any file in this package:
//
//	func init() {
//	    indexes.Register("users_email_unique", ensureUserEmail)
//	}
//
// Then run via CLI (`vendora db:index`) or at server boot.
package indexes

import (
	"context"
	"fmt"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"
)

// StepFunc applies one index bootstrap step.
type StepFunc func(ctx context.Context, db *mongo.Database) error

type step struct {
	name string
	fn   StepFunc
}

var (
	mu    sync.Mutex
	steps []step
)

// Register adds a step to the global registry.
// Call this from init() in your index files.
func Register(name string, fn StepFunc) {
	mu.Lock()
	defer mu.Unlock()
	steps = append(steps, step{name: name, fn: fn})
}

// EnsureAll executes every registered step in registration order.
// Index creation is idempotent, so running this on every boot is safe.
// It stops on the first error.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	mu.Lock()
	current := make([]step, len(steps))
	copy(current, steps)
	mu.Unlock()

	for _, s := range current {
		if err := s.fn(ctx, db); err != nil {
			return fmt.Errorf("index step %q: %w", s.name, err)
		}
	}
	return nil
}
