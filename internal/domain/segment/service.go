package segment

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrTextTooLong  = errors.New("text exceeds maximum length")
	ErrTooManyWords = errors.New("dictionary exceeds maximum word count")
	ErrWordTooLong  = errors.New("word exceeds maximum length")
	ErrEmptyWord    = errors.New("dictionary words cannot be empty")
)

// Service defines the interface for bounded segmentation checks.
// It is the boundary in front of CanSegment: it normalizes caller input and
// enforces Params before running the pure check.
type Service interface {
	// Check builds a dictionary from words and reports whether text can be
	// segmented with it. A nil words slice is treated as an empty dictionary.
	Check(text string, words []string) (bool, error)

	// CheckDictionary reports whether text can be segmented with an already
	// built dictionary. Only the text length is bounded.
	CheckDictionary(text string, dict Dictionary) (bool, error)

	// ValidateWords reports whether words fit the configured dictionary bounds.
	ValidateWords(words []string) error
}

// defaultService is the standard implementation of the Service interface
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new segmentation service with default parameters
func NewDefaultService() Service {
	return &defaultService{
		params: NewDefaultParams(),
	}
}

// NewServiceWithParams creates a new segmentation service with custom parameters
func NewServiceWithParams(params *Params) (Service, error) {
	if params == nil {
		return nil, errors.New("params cannot be nil")
	}
	return &defaultService{
		params: params,
	}, nil
}

// Check implements the Service interface
func (s *defaultService) Check(text string, words []string) (bool, error) {
	if err := s.validateText(text); err != nil {
		return false, err
	}
	if err := s.ValidateWords(words); err != nil {
		return false, err
	}

	return CanSegment(text, NewDictionary(words...)), nil
}

// CheckDictionary implements the Service interface
func (s *defaultService) CheckDictionary(text string, dict Dictionary) (bool, error) {
	if err := s.validateText(text); err != nil {
		return false, err
	}

	return CanSegment(text, dict), nil
}

func (s *defaultService) validateText(text string) error {
	if len(text) > s.params.MaxTextLength {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTextTooLong, len(text), s.params.MaxTextLength)
	}
	return nil
}

// ValidateWords implements the Service interface
func (s *defaultService) ValidateWords(words []string) error {
	if len(words) > s.params.MaxWords {
		return fmt.Errorf("%w: %d words, limit %d", ErrTooManyWords, len(words), s.params.MaxWords)
	}
	for i, w := range words {
		if w == "" {
			return fmt.Errorf("%w: index %d", ErrEmptyWord, i)
		}
		if len(w) > s.params.MaxWordLength {
			return fmt.Errorf("%w: index %d is %d bytes, limit %d", ErrWordTooLong, i, len(w), s.params.MaxWordLength)
		}
	}
	return nil
}
