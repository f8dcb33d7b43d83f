// Package repositories holds the MongoDB data access layer. Each repository
// wraps one collection and maps driver errors to the sentinels below so the
// service layer never inspects driver types.
package repositories

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("repositories: not found")

	// ErrDuplicate is returned when a unique index rejects a write.
	ErrDuplicate = errors.New("repositories: duplicate key")
)

// mapErr translates driver errors to package sentinels.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}
