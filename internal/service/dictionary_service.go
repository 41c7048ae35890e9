package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/phrazzld/wordsplit/internal/domain"
	"github.com/phrazzld/wordsplit/internal/domain/segment"
	"github.com/phrazzld/wordsplit/internal/platform/logger"
	"github.com/phrazzld/wordsplit/internal/store"
	"golang.org/x/sync/errgroup"
)

// DictionaryService manages stored dictionaries and checks texts against them.
type DictionaryService interface {
	// CreateDictionary validates and stores a new dictionary.
	// Returns ErrDictionaryExists if the name is taken.
	CreateDictionary(ctx context.Context, name string, words []string) (*domain.Dictionary, error)

	// GetDictionary retrieves a dictionary by its ID.
	GetDictionary(ctx context.Context, id uuid.UUID) (*domain.Dictionary, error)

	// ListDictionaries returns dictionaries ordered by name.
	ListDictionaries(ctx context.Context, limit, offset int) ([]*domain.Dictionary, error)

	// DeleteDictionary removes a dictionary and evicts it from the cache.
	DeleteDictionary(ctx context.Context, id uuid.UUID) error

	// CheckText reports whether text can be segmented with the stored dictionary.
	CheckText(ctx context.Context, id uuid.UUID, text string) (bool, error)

	// CheckBatch checks every text against the same stored dictionary.
	// Results are returned in input order.
	CheckBatch(ctx context.Context, id uuid.UUID, texts []string) ([]bool, error)
}

// DictionaryServiceConfig bounds caching and batch work.
type DictionaryServiceConfig struct {
	// CacheSize is the number of compiled dictionaries kept in memory
	CacheSize int
	// MaxBatchSize is the largest number of texts accepted by CheckBatch
	MaxBatchSize int
	// BatchConcurrency is the number of texts checked in parallel
	BatchConcurrency int
}

// dictionaryServiceImpl implements the DictionaryService interface
type dictionaryServiceImpl struct {
	store     store.DictionaryStore
	db        *sql.DB
	segmenter segment.Service
	cache     *lru.Cache[uuid.UUID, segment.Dictionary]
	config    DictionaryServiceConfig

	// cacheMu orders cache fills against deletes. deletions counts deletes
	// so a load that raced one is not cached.
	cacheMu   sync.Mutex
	deletions uint64

	logger    *slog.Logger
}

// NewDictionaryService creates a new DictionaryService.
// It returns an error if any of the required dependencies are nil or the
// configuration is not positive.
func NewDictionaryService(
	dictStore store.DictionaryStore,
	db *sql.DB,
	segmenter segment.Service,
	config DictionaryServiceConfig,
	logger *slog.Logger,
) (DictionaryService, error) {
	if dictStore == nil {
		return nil, &DictionaryServiceError{Operation: "create_service", Message: "dictionary store cannot be nil"}
	}
	if db == nil {
		return nil, &DictionaryServiceError{Operation: "create_service", Message: "db cannot be nil"}
	}
	if segmenter == nil {
		return nil, &DictionaryServiceError{Operation: "create_service", Message: "segmenter cannot be nil"}
	}
	if config.MaxBatchSize <= 0 || config.BatchConcurrency <= 0 {
		return nil, &DictionaryServiceError{
			Operation: "create_service",
			Message:   "batch size and concurrency must be positive",
		}
	}

	cache, err := lru.New[uuid.UUID, segment.Dictionary](config.CacheSize)
	if err != nil {
		return nil, &DictionaryServiceError{Operation: "create_service", Message: "invalid cache size", Err: err}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &dictionaryServiceImpl{
		store:     dictStore,
		db:        db,
		segmenter: segmenter,
		cache:     cache,
		config:    config,
		logger:    logger.With("component", "dictionary_service"),
	}, nil
}

// CreateDictionary implements DictionaryService.
// The name lookup and insert share a transaction; the unique constraint
// still catches a concurrent create of the same name.
func (s *dictionaryServiceImpl) CreateDictionary(
	ctx context.Context,
	name string,
	words []string,
) (*domain.Dictionary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.segmenter.ValidateWords(words); err != nil {
		log.Debug("dictionary words rejected", "error", err, "name", name)
		return nil, NewDictionaryServiceError("create_dictionary", "invalid dictionary words", err)
	}

	dict, err := domain.NewDictionary(name, words)
	if err != nil {
		log.Debug("dictionary validation failed", "error", err, "name", name)
		return nil, NewDictionaryServiceError("create_dictionary", "invalid dictionary", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.store.WithTx(tx)

		_, err := txStore.GetByName(ctx, dict.Name)
		switch {
		case err == nil:
			return ErrDictionaryExists
		case !errors.Is(err, store.ErrDictionaryNotFound):
			return err
		}

		return txStore.Create(ctx, dict)
	})
	if err != nil {
		if !errors.Is(err, ErrDictionaryExists) && !errors.Is(err, store.ErrDictionaryExists) {
			log.Error("failed to create dictionary", "error", err, "name", dict.Name)
		}
		return nil, NewDictionaryServiceError("create_dictionary", "failed to save dictionary", err)
	}

	log.Info("dictionary created",
		"dictionary_id", dict.ID,
		"name", dict.Name,
		"word_count", len(dict.Words))
	return dict, nil
}

// GetDictionary implements DictionaryService.
func (s *dictionaryServiceImpl) GetDictionary(ctx context.Context, id uuid.UUID) (*domain.Dictionary, error) {
	dict, err := s.store.GetByID(ctx, id)
	if err != nil {
		if !errors.Is(err, store.ErrDictionaryNotFound) {
			logger.FromContextOrDefault(ctx, s.logger).Error("failed to retrieve dictionary",
				"error", err,
				"dictionary_id", id)
		}
		return nil, NewDictionaryServiceError("get_dictionary", "failed to retrieve dictionary", err)
	}
	return dict, nil
}

// ListDictionaries implements DictionaryService.
func (s *dictionaryServiceImpl) ListDictionaries(
	ctx context.Context,
	limit, offset int,
) ([]*domain.Dictionary, error) {
	dicts, err := s.store.List(ctx, limit, offset)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list dictionaries", "error", err)
		return nil, NewDictionaryServiceError("list_dictionaries", "failed to list dictionaries", err)
	}
	return dicts, nil
}

// DeleteDictionary implements DictionaryService.
func (s *dictionaryServiceImpl) DeleteDictionary(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.store.Delete(ctx, id); err != nil {
		if !errors.Is(err, store.ErrDictionaryNotFound) {
			log.Error("failed to delete dictionary", "error", err, "dictionary_id", id)
		}
		return NewDictionaryServiceError("delete_dictionary", "failed to delete dictionary", err)
	}

	s.cacheMu.Lock()
	s.deletions++
	s.cache.Remove(id)
	s.cacheMu.Unlock()

	log.Info("dictionary deleted", "dictionary_id", id)
	return nil
}

// CheckText implements DictionaryService.
func (s *dictionaryServiceImpl) CheckText(ctx context.Context, id uuid.UUID, text string) (bool, error) {
	dict, err := s.compiled(ctx, id)
	if err != nil {
		return false, NewDictionaryServiceError("check_text", "failed to load dictionary", err)
	}

	ok, err := s.segmenter.CheckDictionary(text, dict)
	if err != nil {
		return false, NewDictionaryServiceError("check_text", "text rejected", err)
	}
	return ok, nil
}

// CheckBatch implements DictionaryService.
func (s *dictionaryServiceImpl) CheckBatch(ctx context.Context, id uuid.UUID, texts []string) ([]bool, error) {
	if len(texts) > s.config.MaxBatchSize {
		return nil, fmt.Errorf("%w: %d texts, limit %d", ErrBatchTooLarge, len(texts), s.config.MaxBatchSize)
	}

	dict, err := s.compiled(ctx, id)
	if err != nil {
		return nil, NewDictionaryServiceError("check_batch", "failed to load dictionary", err)
	}

	results := make([]bool, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.BatchConcurrency)

	for i, text := range texts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := s.segmenter.CheckDictionary(text, dict)
			if err != nil {
				return fmt.Errorf("text %d: %w", i, err)
			}
			results[i] = ok
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, NewDictionaryServiceError("check_batch", "batch check failed", err)
	}
	// Cancellation between scheduling and Wait leaves results unset.
	if err := ctx.Err(); err != nil {
		return nil, NewDictionaryServiceError("check_batch", "batch check cancelled", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("batch checked",
		"dictionary_id", id,
		"texts", len(texts))
	return results, nil
}

// compiled returns the segmentation dictionary for id, loading and caching
// it on a miss. A load that overlaps a delete is returned but not cached.
func (s *dictionaryServiceImpl) compiled(ctx context.Context, id uuid.UUID) (segment.Dictionary, error) {
	if dict, ok := s.cache.Get(id); ok {
		return dict, nil
	}

	s.cacheMu.Lock()
	seen := s.deletions
	s.cacheMu.Unlock()

	stored, err := s.store.GetByID(ctx, id)
	if err != nil {
		return segment.Dictionary{}, err
	}

	dict := stored.Segmenter()
	s.cacheMu.Lock()
	if s.deletions == seen {
		s.cache.Add(id, dict)
	}
	s.cacheMu.Unlock()
	return dict, nil
}
