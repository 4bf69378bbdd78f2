package user

import (
	"context"
	"errors"

	"github.com/xam1dullo/identity-api/model"
)

// Sentinel errors. Backends translate driver errors into these; no
// driver error crosses the repository boundary for expected outcomes.
var (
	ErrDuplicateKey = errors.New("user already exists")
	ErrNotFound     = errors.New("user not found")
)

// UserRepository is the identity store: a durable mapping from email
// to user record. It is the single writer for user records.
type UserRepository interface {
	// Exists reports whether a record for email is stored.
	Exists(ctx context.Context, email string) (bool, error)
	// Create stores a new record atomically. It fails with
	// ErrDuplicateKey when a record for the email already exists,
	// including when a concurrent create won the race.
	Create(ctx context.Context, entity *model.UserEntity) error
	// Get returns the stored record, or (nil, nil) when absent.
	Get(ctx context.Context, email string) (*model.UserEntity, error)
	// Update merges patch onto the stored record under a per-key
	// guard, so concurrent updates to the same email cannot lose
	// writes. It fails with ErrNotFound when absent and never
	// creates a record.
	Update(ctx context.Context, email string, patch *model.UserPatch) (*model.UserEntity, error)
	// Delete removes the record. ErrNotFound when absent.
	Delete(ctx context.Context, email string) error
	// List enumerates all records in key order. Each call
	// re-enumerates from current state.
	List(ctx context.Context) ([]*model.UserEntity, error)
}
