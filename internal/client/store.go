package client

import "context"

// Store defines the interface for client record persistence.
// Two implementations exist: an in-process store (internal/store/memory)
// and a PostgreSQL store (internal/store/postgres).
type Store interface {
	// Insert persists a new record and assigns its identifier.
	Insert(ctx context.Context, record *Record) error

	// ListActive returns a snapshot of all active records, in no
	// guaranteed order. Callers re-sort for display.
	ListActive(ctx context.Context) ([]*Record, error)

	// SoftDelete marks the active record with the given identifier
	// inactive. It returns ErrRecordNotFound when no active record
	// carries the identifier; a soft delete is never undone.
	SoftDelete(ctx context.Context, id int64) error
}
