package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/phrazzld/wordsplit/internal/domain"
	"github.com/phrazzld/wordsplit/internal/platform/logger"
	"github.com/phrazzld/wordsplit/internal/store"
)

// DefaultListLimit is used by List when the caller passes a non-positive limit.
const DefaultListLimit = 20

const dictionaryColumns = `id, name, words, checksum, created_at, updated_at`

// PostgresDictionaryStore implements the store.DictionaryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresDictionaryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresDictionaryStore creates a new PostgreSQL implementation of the DictionaryStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresDictionaryStore(db store.DBTX, logger *slog.Logger) *PostgresDictionaryStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresDictionaryStore{
		db:     db,
		logger: logger.With(slog.String("component", "dictionary_store")),
	}
}

// Ensure PostgresDictionaryStore implements store.DictionaryStore interface
var _ store.DictionaryStore = (*PostgresDictionaryStore)(nil)

// Create implements store.DictionaryStore.Create.
func (s *PostgresDictionaryStore) Create(ctx context.Context, dict *domain.Dictionary) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := dict.Validate(); err != nil {
		log.Warn("dictionary validation failed during create",
			slog.String("error", err.Error()),
			slog.String("dictionary_id", dict.ID.String()))
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO dictionaries (id, name, words, checksum, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		dict.ID,
		dict.Name,
		dict.Words,
		dict.Checksum,
		dict.CreatedAt,
		dict.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Debug("dictionary name already taken", slog.String("name", dict.Name))
			return fmt.Errorf("%w: %s", store.ErrDictionaryExists, dict.Name)
		}

		log.Error("failed to create dictionary",
			slog.String("error", err.Error()),
			slog.String("dictionary_id", dict.ID.String()))
		return store.NewStoreError("dictionary", "create", "failed to insert dictionary", MapError(err))
	}

	log.Info("dictionary created successfully",
		slog.String("dictionary_id", dict.ID.String()),
		slog.String("name", dict.Name),
		slog.Int("word_count", len(dict.Words)))
	return nil
}

// GetByID implements store.DictionaryStore.GetByID.
func (s *PostgresDictionaryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dictionary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving dictionary by ID", slog.String("dictionary_id", id.String()))

	query := `SELECT ` + dictionaryColumns + ` FROM dictionaries WHERE id = $1`

	dict, err := scanDictionary(pgtype.NewMap(), s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("dictionary not found", slog.String("dictionary_id", id.String()))
			return nil, store.ErrDictionaryNotFound
		}
		log.Error("failed to get dictionary by ID",
			slog.String("error", err.Error()),
			slog.String("dictionary_id", id.String()))
		return nil, store.NewStoreError("dictionary", "get", "failed to load dictionary", err)
	}

	return dict, nil
}

// GetByName implements store.DictionaryStore.GetByName.
func (s *PostgresDictionaryStore) GetByName(ctx context.Context, name string) (*domain.Dictionary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving dictionary by name", slog.String("name", name))

	query := `SELECT ` + dictionaryColumns + ` FROM dictionaries WHERE name = $1`

	dict, err := scanDictionary(pgtype.NewMap(), s.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrDictionaryNotFound
		}
		log.Error("failed to get dictionary by name",
			slog.String("error", err.Error()),
			slog.String("name", name))
		return nil, store.NewStoreError("dictionary", "get", "failed to load dictionary", err)
	}

	return dict, nil
}

// List implements store.DictionaryStore.List.
func (s *PostgresDictionaryStore) List(ctx context.Context, limit, offset int) ([]*domain.Dictionary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = DefaultListLimit
	}
	if offset < 0 {
		offset = 0
	}

	query := `SELECT ` + dictionaryColumns + ` FROM dictionaries ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		log.Error("failed to list dictionaries", slog.String("error", err.Error()))
		return nil, store.NewStoreError("dictionary", "list", "failed to query dictionaries", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	typeMap := pgtype.NewMap()
	dicts := []*domain.Dictionary{}
	for rows.Next() {
		dict, err := scanDictionary(typeMap, rows)
		if err != nil {
			log.Error("failed to scan dictionary row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("dictionary", "list", "failed to scan dictionary", err)
		}
		dicts = append(dicts, dict)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, store.NewStoreError("dictionary", "list", "failed to iterate dictionaries", err)
	}

	log.Debug("listed dictionaries",
		slog.Int("limit", limit),
		slog.Int("offset", offset),
		slog.Int("count", len(dicts)))
	return dicts, nil
}

// Delete implements store.DictionaryStore.Delete.
func (s *PostgresDictionaryStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM dictionaries WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete dictionary",
			slog.String("error", err.Error()),
			slog.String("dictionary_id", id.String()))
		return store.NewStoreError("dictionary", "delete", "failed to delete dictionary", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrDictionaryNotFound); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("failed to check deleted rows",
				slog.String("error", err.Error()),
				slog.String("dictionary_id", id.String()))
		}
		return err
	}

	log.Info("dictionary deleted successfully", slog.String("dictionary_id", id.String()))
	return nil
}

// WithTx implements store.DictionaryStore.WithTx.
func (s *PostgresDictionaryStore) WithTx(tx *sql.Tx) store.DictionaryStore {
	return &PostgresDictionaryStore{
		db:     tx,
		logger: s.logger,
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanDictionary reads one row in dictionaryColumns order. The TEXT[] words
// column goes through pgtype because database/sql cannot scan arrays.
// typeMap may be shared across the rows of one query but not across goroutines.
func scanDictionary(typeMap *pgtype.Map, row rowScanner) (*domain.Dictionary, error) {
	var (
		dict  domain.Dictionary
		words pgtype.FlatArray[string]
	)

	if err := row.Scan(
		&dict.ID,
		&dict.Name,
		typeMap.SQLScanner(&words),
		&dict.Checksum,
		&dict.CreatedAt,
		&dict.UpdatedAt,
	); err != nil {
		return nil, err
	}

	dict.Words = []string(words)
	return &dict, nil
}
