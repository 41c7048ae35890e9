package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/wordsplit/internal/domain"
	"github.com/phrazzld/wordsplit/internal/domain/segment"
	"github.com/phrazzld/wordsplit/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDictionaryStore is a mock implementation of store.DictionaryStore
type MockDictionaryStore struct {
	mock.Mock
}

func (m *MockDictionaryStore) Create(ctx context.Context, dict *domain.Dictionary) error {
	args := m.Called(ctx, dict)
	return args.Error(0)
}

func (m *MockDictionaryStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Dictionary, error) {
	args := m.Called(ctx, id)
	dict, _ := args.Get(0).(*domain.Dictionary)
	return dict, args.Error(1)
}

func (m *MockDictionaryStore) GetByName(ctx context.Context, name string) (*domain.Dictionary, error) {
	args := m.Called(ctx, name)
	dict, _ := args.Get(0).(*domain.Dictionary)
	return dict, args.Error(1)
}

func (m *MockDictionaryStore) List(ctx context.Context, limit, offset int) ([]*domain.Dictionary, error) {
	args := m.Called(ctx, limit, offset)
	dicts, _ := args.Get(0).([]*domain.Dictionary)
	return dicts, args.Error(1)
}

func (m *MockDictionaryStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// WithTx returns the same mock so expectations cover transactional calls too.
func (m *MockDictionaryStore) WithTx(tx *sql.Tx) store.DictionaryStore {
	return m
}

// countingSegmenter wraps a real segment.Service and counts dictionary checks.
type countingSegmenter struct {
	segment.Service
	checks atomic.Int64
}

func (c *countingSegmenter) CheckDictionary(text string, dict segment.Dictionary) (bool, error) {
	c.checks.Add(1)
	return c.Service.CheckDictionary(text, dict)
}

type serviceFixture struct {
	svc   DictionaryService
	store *MockDictionaryStore
	sql   sqlmock.Sqlmock
	seg   *countingSegmenter
}

func newServiceFixture(t *testing.T, cfg DictionaryServiceConfig) *serviceFixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	base, err := segment.NewServiceWithParams(segment.NewParams(segment.ParamsConfig{
		MaxTextLength: 64,
		MaxWords:      8,
		MaxWordLength: 16,
	}))
	require.NoError(t, err)
	seg := &countingSegmenter{Service: base}

	mockStore := &MockDictionaryStore{}
	svc, err := NewDictionaryService(mockStore, db, seg, cfg, nil)
	require.NoError(t, err)

	return &serviceFixture{svc: svc, store: mockStore, sql: sqlMock, seg: seg}
}

func defaultServiceConfig() DictionaryServiceConfig {
	return DictionaryServiceConfig{CacheSize: 4, MaxBatchSize: 5, BatchConcurrency: 2}
}

func castlesDictionary(t *testing.T) *domain.Dictionary {
	t.Helper()

	dict, err := domain.NewDictionary("castles", []string{"joy", "castle", "cat"})
	require.NoError(t, err)
	return dict
}

func TestNewDictionaryService_Validation(t *testing.T) {
	t.Parallel()

	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	seg := segment.NewDefaultService()
	cfg := defaultServiceConfig()

	testCases := []struct {
		name    string
		store   store.DictionaryStore
		db      *sql.DB
		seg     segment.Service
		cfg     DictionaryServiceConfig
		message string
	}{
		{"nil store", nil, db, seg, cfg, "dictionary store cannot be nil"},
		{"nil db", &MockDictionaryStore{}, nil, seg, cfg, "db cannot be nil"},
		{"nil segmenter", &MockDictionaryStore{}, db, nil, cfg, "segmenter cannot be nil"},
		{
			"zero concurrency",
			&MockDictionaryStore{}, db, seg,
			DictionaryServiceConfig{CacheSize: 1, MaxBatchSize: 1},
			"batch size and concurrency must be positive",
		},
		{
			"zero cache",
			&MockDictionaryStore{}, db, seg,
			DictionaryServiceConfig{MaxBatchSize: 1, BatchConcurrency: 1},
			"invalid cache size",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, err := NewDictionaryService(tc.store, tc.db, tc.seg, tc.cfg, nil)
			assert.Nil(t, svc)

			var svcErr *DictionaryServiceError
			require.ErrorAs(t, err, &svcErr)
			assert.Equal(t, "create_service", svcErr.Operation)
			assert.Contains(t, svcErr.Message, tc.message)
		})
	}
}

func TestDictionaryService_CreateDictionary(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		f := newServiceFixture(t, defaultServiceConfig())
		f.sql.ExpectBegin()
		f.sql.ExpectCommit()
		f.store.On("GetByName", mock.Anything, "castles").Return(nil, store.ErrDictionaryNotFound)
		f.store.On("Create", mock.Anything, mock.AnythingOfType("*domain.Dictionary")).Return(nil)

		dict, err := f.svc.CreateDictionary(context.Background(), "castles", []string{"joy", "castle", "cat", "joy"})
		require.NoError(t, err)
		assert.Equal(t, "castles", dict.Name)
		assert.Equal(t, []string{"castle", "cat", "joy"}, dict.Words)

		f.store.AssertExpectations(t)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("name taken", func(t *testing.T) {
		f := newServiceFixture(t, defaultServiceConfig())
		f.sql.ExpectBegin()
		f.sql.ExpectRollback()
		f.store.On("GetByName", mock.Anything, "castles").Return(castlesDictionary(t), nil)

		_, err := f.svc.CreateDictionary(context.Background(), "castles", []string{"cat"})
		assert.ErrorIs(t, err, ErrDictionaryExists)
		f.store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("concurrent insert hits unique constraint", func(t *testing.T) {
		f := newServiceFixture(t, defaultServiceConfig())
		f.sql.ExpectBegin()
		f.sql.ExpectRollback()
		f.store.On("GetByName", mock.Anything, "castles").Return(nil, store.ErrDictionaryNotFound)
		f.store.On("Create", mock.Anything, mock.Anything).Return(store.ErrDictionaryExists)

		_, err := f.svc.CreateDictionary(context.Background(), "castles", []string{"cat"})
		assert.ErrorIs(t, err, ErrDictionaryExists)
	})

	t.Run("invalid input never reaches the store", func(t *testing.T) {
		testCases := []struct {
			name    string
			dict    string
			words   []string
			wantErr error
		}{
			{"empty name", "", []string{"cat"}, domain.ErrEmptyDictionaryName},
			{"no words", "castles", nil, domain.ErrEmptyDictionaryWords},
			{"empty word", "castles", []string{"cat", ""}, segment.ErrEmptyWord},
			{"too many words", "castles", strings.Fields("a b c d e f g h i"), segment.ErrTooManyWords},
			{"word too long", "castles", []string{strings.Repeat("x", 17)}, segment.ErrWordTooLong},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				f := newServiceFixture(t, defaultServiceConfig())

				_, err := f.svc.CreateDictionary(context.Background(), tc.dict, tc.words)
				assert.ErrorIs(t, err, tc.wantErr)

				var svcErr *DictionaryServiceError
				assert.ErrorAs(t, err, &svcErr)
				f.store.AssertNotCalled(t, "GetByName", mock.Anything, mock.Anything)
				assert.NoError(t, f.sql.ExpectationsWereMet())
			})
		}
	})
}

func TestDictionaryService_GetListDelete(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, defaultServiceConfig())
	dict := castlesDictionary(t)
	missing := uuid.New()
	dbErr := errors.New("connection reset")

	f.store.On("GetByID", mock.Anything, dict.ID).Return(dict, nil)
	f.store.On("GetByID", mock.Anything, missing).Return(nil, store.ErrDictionaryNotFound)
	f.store.On("List", mock.Anything, 10, 0).Return([]*domain.Dictionary{dict}, nil)
	f.store.On("List", mock.Anything, 10, 10).Return(nil, dbErr)
	f.store.On("Delete", mock.Anything, dict.ID).Return(nil)
	f.store.On("Delete", mock.Anything, missing).Return(store.ErrDictionaryNotFound)

	ctx := context.Background()

	got, err := f.svc.GetDictionary(ctx, dict.ID)
	require.NoError(t, err)
	assert.Equal(t, dict, got)

	_, err = f.svc.GetDictionary(ctx, missing)
	assert.Equal(t, ErrDictionaryNotFound, err)

	list, err := f.svc.ListDictionaries(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = f.svc.ListDictionaries(ctx, 10, 10)
	assert.ErrorIs(t, err, dbErr)

	require.NoError(t, f.svc.DeleteDictionary(ctx, dict.ID))
	assert.Equal(t, ErrDictionaryNotFound, f.svc.DeleteDictionary(ctx, missing))
}

func TestDictionaryService_CheckText(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, defaultServiceConfig())
	dict := castlesDictionary(t)
	f.store.On("GetByID", mock.Anything, dict.ID).Return(dict, nil).Once()

	ctx := context.Background()

	ok, err := f.svc.CheckText(ctx, dict.ID, "castlejoycastlecatjoy")
	require.NoError(t, err)
	assert.True(t, ok)

	// Served from the cache: GetByID is expected exactly once
	ok, err = f.svc.CheckText(ctx, dict.ID, "castlejoyecastlecatjoy")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.svc.CheckText(ctx, dict.ID, strings.Repeat("cat", 30))
	assert.ErrorIs(t, err, segment.ErrTextTooLong)

	f.store.AssertExpectations(t)
}

func TestDictionaryService_DeleteEvictsCache(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, defaultServiceConfig())
	dict := castlesDictionary(t)
	f.store.On("GetByID", mock.Anything, dict.ID).Return(dict, nil).Once()
	f.store.On("Delete", mock.Anything, dict.ID).Return(nil).Once()

	ctx := context.Background()

	_, err := f.svc.CheckText(ctx, dict.ID, "cat")
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteDictionary(ctx, dict.ID))

	f.store.On("GetByID", mock.Anything, dict.ID).Return(nil, store.ErrDictionaryNotFound).Once()
	_, err = f.svc.CheckText(ctx, dict.ID, "cat")
	assert.ErrorIs(t, err, ErrDictionaryNotFound)

	f.store.AssertExpectations(t)
}

func TestDictionaryService_DeleteDuringLoadSkipsCache(t *testing.T) {
	t.Parallel()

	f := newServiceFixture(t, defaultServiceConfig())
	dict := castlesDictionary(t)

	loading := make(chan struct{})
	release := make(chan struct{})
	f.store.On("GetByID", mock.Anything, dict.ID).
		Run(func(mock.Arguments) {
			close(loading)
			<-release
		}).
		Return(dict, nil).Once()
	f.store.On("Delete", mock.Anything, dict.ID).Return(nil).Once()

	ctx := context.Background()

	type checkResult struct {
		ok  bool
		err error
	}
	done := make(chan checkResult, 1)
	go func() {
		ok, err := f.svc.CheckText(ctx, dict.ID, "cat")
		done <- checkResult{ok, err}
	}()

	<-loading
	require.NoError(t, f.svc.DeleteDictionary(ctx, dict.ID))
	close(release)

	first := <-done
	require.NoError(t, first.err)
	assert.True(t, first.ok)

	f.store.On("GetByID", mock.Anything, dict.ID).Return(nil, store.ErrDictionaryNotFound).Once()
	_, err := f.svc.CheckText(ctx, dict.ID, "cat")
	require.ErrorIs(t, err, ErrDictionaryNotFound)

	f.store.AssertExpectations(t)
}

func TestDictionaryService_CheckBatch(t *testing.T) {
	t.Parallel()

	t.Run("results keep input order", func(t *testing.T) {
		f := newServiceFixture(t, defaultServiceConfig())
		dict := castlesDictionary(t)
		f.store.On("GetByID", mock.Anything, dict.ID).Return(dict, nil)

		texts := []string{"castlejoy", "castlejoye", "", "catcatcastle", "dog"}
		results, err := f.svc.CheckBatch(context.Background(), dict.ID, texts)
		require.NoError(t, err)
		assert.Equal(t, []bool{true, false, true, true, false}, results)
		assert.EqualValues(t, len(texts), f.seg.checks.Load())
	})

	t.Run("empty batch", func(t *testing.T) {
		f := newServiceFixture(t, defaultServiceConfig())
		dict := castlesDictionary(t)
		f.store.On("GetByID", mock.Anything, dict.ID).Return(dict, nil)

		results, err := f.svc.CheckBatch(context.Background(), dict.ID, nil)
		require.NoError(t, err)
		assert.Empty(t, results)
	})

	t.Run("too large", func(t *testing.T) {
		f := newServiceFixture(t, defaultServiceConfig())

		_, err := f.svc.CheckBatch(context.Background(), uuid.New(), make([]string, 6))
		assert.ErrorIs(t, err, ErrBatchTooLarge)
		f.store.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("one text over the limit fails the batch", func(t *testing.T) {
		f := newServiceFixture(t, defaultServiceConfig())
		dict := castlesDictionary(t)
		f.store.On("GetByID", mock.Anything, dict.ID).Return(dict, nil)

		_, err := f.svc.CheckBatch(context.Background(), dict.ID, []string{"cat", strings.Repeat("cat", 30)})
		assert.ErrorIs(t, err, segment.ErrTextTooLong)
		assert.ErrorContains(t, err, "text 1")
	})

	t.Run("cancelled context", func(t *testing.T) {
		f := newServiceFixture(t, defaultServiceConfig())
		dict := castlesDictionary(t)
		f.store.On("GetByID", mock.Anything, dict.ID).Return(dict, nil)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := f.svc.CheckBatch(ctx, dict.ID, []string{"cat", "joy"})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unknown dictionary", func(t *testing.T) {
		f := newServiceFixture(t, defaultServiceConfig())
		id := uuid.New()
		f.store.On("GetByID", mock.Anything, id).Return(nil, store.ErrDictionaryNotFound)

		_, err := f.svc.CheckBatch(context.Background(), id, []string{"cat"})
		assert.Equal(t, ErrDictionaryNotFound, err)
	})
}

func TestNewDictionaryServiceError(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewDictionaryServiceError("op", "msg", nil))
	assert.Equal(t, ErrDictionaryNotFound, NewDictionaryServiceError("op", "msg", store.ErrDictionaryNotFound))
	assert.Equal(t, ErrDictionaryExists, NewDictionaryServiceError("op", "msg", store.ErrDictionaryExists))

	cause := errors.New("boom")
	err := NewDictionaryServiceError("check_text", "failed to load dictionary", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "dictionary service check_text failed: failed to load dictionary: boom", err.Error())

	bare := &DictionaryServiceError{Operation: "create_service", Message: "db cannot be nil"}
	assert.Equal(t, "dictionary service create_service failed: db cannot be nil", bare.Error())
}
