package domain

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/wordsplit/internal/domain/segment"
	"golang.org/x/crypto/blake2b"
)

// MaxDictionaryNameLength is the longest dictionary name accepted, in bytes.
const MaxDictionaryNameLength = 128

// Common validation errors for Dictionary
var (
	ErrEmptyDictionaryID     = errors.New("dictionary ID cannot be empty")
	ErrEmptyDictionaryName   = errors.New("dictionary name cannot be empty")
	ErrDictionaryNameTooLong = errors.New("dictionary name is too long")
	ErrEmptyDictionaryWords  = errors.New("dictionary must contain at least one word")
	ErrChecksumMismatch      = errors.New("dictionary checksum does not match its words")
)

// Dictionary is a named, persisted word list that texts can be checked against.
// Words are kept deduplicated and sorted so that two dictionaries with the
// same content always share the same Checksum.
type Dictionary struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Words     []string  `json:"words"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewDictionary creates a new Dictionary with the given name and words.
// It normalizes the word list, computes the checksum, generates a new UUID
// and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewDictionary(name string, words []string) (*Dictionary, error) {
	for _, w := range words {
		if w == "" {
			return nil, segment.ErrEmptyWord
		}
	}

	normalized := NormalizeWords(words)
	now := time.Now().UTC()

	dict := &Dictionary{
		ID:        uuid.New(),
		Name:      name,
		Words:     normalized,
		Checksum:  Checksum(normalized),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := dict.Validate(); err != nil {
		return nil, err
	}

	return dict, nil
}

// Validate checks if the Dictionary has valid data.
// Returns an error if any field fails validation.
func (d *Dictionary) Validate() error {
	if d.ID == uuid.Nil {
		return ErrEmptyDictionaryID
	}

	if d.Name == "" {
		return ErrEmptyDictionaryName
	}

	if len(d.Name) > MaxDictionaryNameLength {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrDictionaryNameTooLong, len(d.Name), MaxDictionaryNameLength)
	}

	if len(d.Words) == 0 {
		return ErrEmptyDictionaryWords
	}

	for _, w := range d.Words {
		if w == "" {
			return segment.ErrEmptyWord
		}
	}

	if d.Checksum != "" && d.Checksum != Checksum(NormalizeWords(d.Words)) {
		return ErrChecksumMismatch
	}

	return nil
}

// Segmenter builds the word set used by the segmentation checker.
func (d *Dictionary) Segmenter() segment.Dictionary {
	return segment.NewDictionary(d.Words...)
}

// NormalizeWords returns a sorted copy of words with duplicates removed.
func NormalizeWords(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Checksum returns the hex-encoded BLAKE2b-256 digest of a normalized word list.
// Words are separated by a NUL byte so that {"ab","c"} and {"a","bc"} differ.
func Checksum(normalized []string) string {
	// New256 only fails for keys longer than 64 bytes
	h, _ := blake2b.New256(nil)
	for i, w := range normalized {
		if i > 0 {
			_, _ = h.Write([]byte{0})
		}
		_, _ = h.Write([]byte(w))
	}
	return hex.EncodeToString(h.Sum(nil))
}
