package api

import (
	"time"

	"github.com/phrazzld/wordsplit/internal/domain"
)

// SegmentRequest is the body of POST /api/segment.
// An empty text is valid; a missing or empty words list is an empty dictionary.
type SegmentRequest struct {
	Text  string   `json:"text"`
	Words []string `json:"words"`
}

// SegmentResponse reports whether a text can be segmented.
type SegmentResponse struct {
	Segmentable bool `json:"segmentable"`
}

// CreateDictionaryRequest is the body of POST /api/dictionaries.
type CreateDictionaryRequest struct {
	Name  string   `json:"name"  validate:"required,max=128"`
	Words []string `json:"words" validate:"required,min=1,dive,required"`
}

// CheckTextRequest is the body of POST /api/dictionaries/{id}/segment.
type CheckTextRequest struct {
	Text string `json:"text"`
}

// BatchRequest is the body of POST /api/dictionaries/{id}/segment/batch.
type BatchRequest struct {
	Texts []string `json:"texts" validate:"required"`
}

// BatchResponse holds one result per requested text, in request order.
type BatchResponse struct {
	Results []bool `json:"results"`
}

// DictionaryResponse represents a stored dictionary.
// Words are omitted from list responses.
type DictionaryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Words     []string  `json:"words,omitempty"`
	WordCount int       `json:"word_count"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListDictionariesResponse is a page of dictionaries ordered by name.
type ListDictionariesResponse struct {
	Dictionaries []DictionaryResponse `json:"dictionaries"`
	Limit        int                  `json:"limit"`
	Offset       int                  `json:"offset"`
}

// dictionaryToResponse converts a domain dictionary to its response form.
func dictionaryToResponse(dict *domain.Dictionary, withWords bool) DictionaryResponse {
	resp := DictionaryResponse{
		ID:        dict.ID.String(),
		Name:      dict.Name,
		WordCount: len(dict.Words),
		Checksum:  dict.Checksum,
		CreatedAt: dict.CreatedAt,
		UpdatedAt: dict.UpdatedAt,
	}
	if withWords {
		resp.Words = dict.Words
	}
	return resp
}
