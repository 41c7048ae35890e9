package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/wordsplit/internal/domain"
)

// DictionaryStore defines the interface for dictionary persistence.
type DictionaryStore interface {
	// Create saves a new dictionary to the store.
	// Returns ErrDictionaryExists if the name is already taken and
	// ErrInvalidEntity if the dictionary fails domain validation.
	Create(ctx context.Context, dict *domain.Dictionary) error

	// GetByID retrieves a dictionary by its unique ID.
	// Returns ErrDictionaryNotFound if the dictionary does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Dictionary, error)

	// GetByName retrieves a dictionary by its unique name.
	// Returns ErrDictionaryNotFound if the dictionary does not exist.
	GetByName(ctx context.Context, name string) (*domain.Dictionary, error)

	// List returns dictionaries ordered by name.
	// Returns an empty slice if nothing matches.
	List(ctx context.Context, limit, offset int) ([]*domain.Dictionary, error)

	// Delete removes a dictionary by its ID.
	// Returns ErrDictionaryNotFound if the dictionary does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new DictionaryStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) DictionaryStore
}
