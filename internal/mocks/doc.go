// Package mocks provides shared mock implementations of service interfaces
// for handler and router tests.
//
// Each mock exposes one function field per method. A test sets only the
// fields it needs; calling a method whose field is unset returns
// ErrNotMocked, so unexpected calls surface as errors instead of zero values.
//
//	svc := &mocks.MockDictionaryService{
//		CheckTextFn: func(ctx context.Context, id uuid.UUID, text string) (bool, error) {
//			return true, nil
//		},
//	}
package mocks
