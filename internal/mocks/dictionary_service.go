package mocks

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/phrazzld/wordsplit/internal/domain"
	"github.com/phrazzld/wordsplit/internal/service"
)

// ErrNotMocked is returned by mock methods whose function field is unset.
var ErrNotMocked = errors.New("not mocked")

// MockDictionaryService implements service.DictionaryService for testing
type MockDictionaryService struct {
	CreateDictionaryFn func(ctx context.Context, name string, words []string) (*domain.Dictionary, error)
	GetDictionaryFn    func(ctx context.Context, id uuid.UUID) (*domain.Dictionary, error)
	ListDictionariesFn func(ctx context.Context, limit, offset int) ([]*domain.Dictionary, error)
	DeleteDictionaryFn func(ctx context.Context, id uuid.UUID) error
	CheckTextFn        func(ctx context.Context, id uuid.UUID, text string) (bool, error)
	CheckBatchFn       func(ctx context.Context, id uuid.UUID, texts []string) ([]bool, error)
}

var _ service.DictionaryService = (*MockDictionaryService)(nil)

// CreateDictionary implements the DictionaryService.CreateDictionary method
func (m *MockDictionaryService) CreateDictionary(
	ctx context.Context,
	name string,
	words []string,
) (*domain.Dictionary, error) {
	if m.CreateDictionaryFn == nil {
		return nil, ErrNotMocked
	}
	return m.CreateDictionaryFn(ctx, name, words)
}

// GetDictionary implements the DictionaryService.GetDictionary method
func (m *MockDictionaryService) GetDictionary(ctx context.Context, id uuid.UUID) (*domain.Dictionary, error) {
	if m.GetDictionaryFn == nil {
		return nil, ErrNotMocked
	}
	return m.GetDictionaryFn(ctx, id)
}

// ListDictionaries implements the DictionaryService.ListDictionaries method
func (m *MockDictionaryService) ListDictionaries(
	ctx context.Context,
	limit, offset int,
) ([]*domain.Dictionary, error) {
	if m.ListDictionariesFn == nil {
		return nil, ErrNotMocked
	}
	return m.ListDictionariesFn(ctx, limit, offset)
}

// DeleteDictionary implements the DictionaryService.DeleteDictionary method
func (m *MockDictionaryService) DeleteDictionary(ctx context.Context, id uuid.UUID) error {
	if m.DeleteDictionaryFn == nil {
		return ErrNotMocked
	}
	return m.DeleteDictionaryFn(ctx, id)
}

// CheckText implements the DictionaryService.CheckText method
func (m *MockDictionaryService) CheckText(ctx context.Context, id uuid.UUID, text string) (bool, error) {
	if m.CheckTextFn == nil {
		return false, ErrNotMocked
	}
	return m.CheckTextFn(ctx, id, text)
}

// CheckBatch implements the DictionaryService.CheckBatch method
func (m *MockDictionaryService) CheckBatch(ctx context.Context, id uuid.UUID, texts []string) ([]bool, error) {
	if m.CheckBatchFn == nil {
		return nil, ErrNotMocked
	}
	return m.CheckBatchFn(ctx, id, texts)
}
