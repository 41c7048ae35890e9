package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/wordsplit/internal/domain"
	"github.com/phrazzld/wordsplit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pgArgConverter lets []string through the way the pgx stdlib driver does.
type pgArgConverter struct{}

func (pgArgConverter) ConvertValue(v any) (driver.Value, error) {
	if words, ok := v.([]string); ok {
		return words, nil
	}
	return driver.DefaultParameterConverter.ConvertValue(v)
}

func newMockStore(t *testing.T) (*PostgresDictionaryStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(pgArgConverter{}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewPostgresDictionaryStore(db, nil), mock
}

func dictionaryRows(dicts ...*domain.Dictionary) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "words", "checksum", "created_at", "updated_at"})
	for _, d := range dicts {
		rows.AddRow(d.ID.String(), d.Name, "{castle,cat,joy}", d.Checksum, d.CreatedAt, d.UpdatedAt)
	}
	return rows
}

func mustDictionary(t *testing.T, name string) *domain.Dictionary {
	t.Helper()

	dict, err := domain.NewDictionary(name, []string{"joy", "castle", "cat"})
	require.NoError(t, err)
	return dict
}

func TestNewPostgresDictionaryStore_NilDB(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		NewPostgresDictionaryStore(nil, nil)
	})
}

func TestPostgresDictionaryStore_Create(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		s, mock := newMockStore(t)
		dict := mustDictionary(t, "castles")

		mock.ExpectExec("INSERT INTO dictionaries").
			WithArgs(dict.ID, dict.Name, sqlmock.AnyArg(), dict.Checksum, dict.CreatedAt, dict.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Create(context.Background(), dict))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate_name", func(t *testing.T) {
		s, mock := newMockStore(t)
		dict := mustDictionary(t, "castles")

		mock.ExpectExec("INSERT INTO dictionaries").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "dictionaries_name_key"})

		err := s.Create(context.Background(), dict)
		assert.ErrorIs(t, err, store.ErrDictionaryExists)
		assert.True(t, store.IsDuplicateError(err))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("invalid_entity", func(t *testing.T) {
		s, mock := newMockStore(t)
		dict := mustDictionary(t, "castles")
		dict.Name = ""

		err := s.Create(context.Background(), dict)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
		assert.ErrorIs(t, err, domain.ErrEmptyDictionaryName)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database_error", func(t *testing.T) {
		s, mock := newMockStore(t)
		dict := mustDictionary(t, "castles")

		mock.ExpectExec("INSERT INTO dictionaries").WillReturnError(errors.New("connection reset"))

		err := s.Create(context.Background(), dict)
		var storeErr *store.StoreError
		require.ErrorAs(t, err, &storeErr)
		assert.Equal(t, "create", storeErr.Operation)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresDictionaryStore_GetByID(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		s, mock := newMockStore(t)
		dict := mustDictionary(t, "castles")

		mock.ExpectQuery("SELECT (.+) FROM dictionaries WHERE id = \\$1").
			WithArgs(dict.ID).
			WillReturnRows(dictionaryRows(dict))

		got, err := s.GetByID(context.Background(), dict.ID)
		require.NoError(t, err)
		assert.Equal(t, dict.ID, got.ID)
		assert.Equal(t, "castles", got.Name)
		assert.Equal(t, []string{"castle", "cat", "joy"}, got.Words)
		assert.Equal(t, dict.Checksum, got.Checksum)
		assert.NoError(t, got.Validate(), "scanned dictionary should keep a consistent checksum")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not_found", func(t *testing.T) {
		s, mock := newMockStore(t)
		id := uuid.New()

		mock.ExpectQuery("SELECT (.+) FROM dictionaries WHERE id").
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err := s.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, store.ErrDictionaryNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresDictionaryStore_GetByName(t *testing.T) {
	t.Parallel()

	s, mock := newMockStore(t)
	dict := mustDictionary(t, "castles")

	mock.ExpectQuery("SELECT (.+) FROM dictionaries WHERE name = \\$1").
		WithArgs("castles").
		WillReturnRows(dictionaryRows(dict))
	mock.ExpectQuery("SELECT (.+) FROM dictionaries WHERE name = \\$1").
		WithArgs("missing").
		WillReturnRows(dictionaryRows())

	got, err := s.GetByName(context.Background(), "castles")
	require.NoError(t, err)
	assert.Equal(t, dict.ID, got.ID)

	_, err = s.GetByName(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrDictionaryNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDictionaryStore_List(t *testing.T) {
	t.Parallel()

	t.Run("default_limit_and_clamped_offset", func(t *testing.T) {
		s, mock := newMockStore(t)
		a := mustDictionary(t, "alpha")
		b := mustDictionary(t, "beta")

		mock.ExpectQuery("SELECT (.+) FROM dictionaries ORDER BY name LIMIT").
			WithArgs(DefaultListLimit, 0).
			WillReturnRows(dictionaryRows(a, b))

		got, err := s.List(context.Background(), 0, -3)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "alpha", got[0].Name)
		assert.Equal(t, "beta", got[1].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rows_keep_their_own_words", func(t *testing.T) {
		s, mock := newMockStore(t)
		a := mustDictionary(t, "alpha")
		b := mustDictionary(t, "beta")

		rows := sqlmock.NewRows([]string{"id", "name", "words", "checksum", "created_at", "updated_at"}).
			AddRow(a.ID.String(), a.Name, "{castle,cat,joy}", a.Checksum, a.CreatedAt, a.UpdatedAt).
			AddRow(b.ID.String(), b.Name, "{ab,abc}", "other", b.CreatedAt, b.UpdatedAt)
		mock.ExpectQuery("SELECT (.+) FROM dictionaries").WithArgs(10, 0).WillReturnRows(rows)

		got, err := s.List(context.Background(), 10, 0)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, []string{"castle", "cat", "joy"}, got[0].Words)
		assert.Equal(t, []string{"ab", "abc"}, got[1].Words)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty_result_is_not_nil", func(t *testing.T) {
		s, mock := newMockStore(t)

		mock.ExpectQuery("SELECT (.+) FROM dictionaries").
			WithArgs(5, 10).
			WillReturnRows(dictionaryRows())

		got, err := s.List(context.Background(), 5, 10)
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresDictionaryStore_Delete(t *testing.T) {
	t.Parallel()

	t.Run("deleted", func(t *testing.T) {
		s, mock := newMockStore(t)
		id := uuid.New()

		mock.ExpectExec("DELETE FROM dictionaries WHERE id = \\$1").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, s.Delete(context.Background(), id))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not_found", func(t *testing.T) {
		s, mock := newMockStore(t)
		id := uuid.New()

		mock.ExpectExec("DELETE FROM dictionaries").
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, s.Delete(context.Background(), id), store.ErrDictionaryNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgresDictionaryStore_WithTx(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New(sqlmock.ValueConverterOption(pgArgConverter{}))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewPostgresDictionaryStore(db, nil)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM dictionaries").WithArgs(id).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = store.RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return s.WithTx(tx).Delete(ctx, id)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanDictionary_Timestamps(t *testing.T) {
	t.Parallel()

	s, mock := newMockStore(t)
	dict := mustDictionary(t, "castles")
	dict.CreatedAt = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	dict.UpdatedAt = dict.CreatedAt.Add(time.Hour)

	mock.ExpectQuery("SELECT").WillReturnRows(dictionaryRows(dict))

	got, err := s.GetByID(context.Background(), dict.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(dict.CreatedAt))
	assert.True(t, got.UpdatedAt.Equal(dict.UpdatedAt))
}
