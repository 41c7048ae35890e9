package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/wordsplit/internal/api/middleware"
	"github.com/phrazzld/wordsplit/internal/api/shared"
	"github.com/phrazzld/wordsplit/internal/platform/logger"
	"github.com/phrazzld/wordsplit/internal/service"
)

// DictionaryHandler handles stored-dictionary HTTP requests
type DictionaryHandler struct {
	dictionaryService service.DictionaryService
}

// NewDictionaryHandler creates a new DictionaryHandler
func NewDictionaryHandler(dictionaryService service.DictionaryService) *DictionaryHandler {
	return &DictionaryHandler{
		dictionaryService: dictionaryService,
	}
}

// CreateDictionary handles POST /api/dictionaries requests
func (h *DictionaryHandler) CreateDictionary(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req CreateDictionaryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	dict, err := h.dictionaryService.CreateDictionary(r.Context(), req.Name, req.Words)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create dictionary")
		return
	}

	subject, _ := middleware.GetSubject(r)
	log.Info("dictionary created via API",
		slog.String("dictionary_id", dict.ID.String()),
		slog.String("subject", subject))

	shared.RespondWithJSON(w, r, http.StatusCreated, dictionaryToResponse(dict, true))
}

// ListDictionaries handles GET /api/dictionaries requests
func (h *DictionaryHandler) ListDictionaries(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := getPagination(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	dicts, err := h.dictionaryService.ListDictionaries(r.Context(), limit, offset)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list dictionaries")
		return
	}

	response := ListDictionariesResponse{
		Dictionaries: make([]DictionaryResponse, 0, len(dicts)),
		Limit:        limit,
		Offset:       offset,
	}
	for _, dict := range dicts {
		response.Dictionaries = append(response.Dictionaries, dictionaryToResponse(dict, false))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// GetDictionary handles GET /api/dictionaries/{id} requests
func (h *DictionaryHandler) GetDictionary(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	dict, err := h.dictionaryService.GetDictionary(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get dictionary")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, dictionaryToResponse(dict, true))
}

// DeleteDictionary handles DELETE /api/dictionaries/{id} requests
func (h *DictionaryHandler) DeleteDictionary(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.dictionaryService.DeleteDictionary(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete dictionary")
		return
	}

	subject, _ := middleware.GetSubject(r)
	logger.FromContext(r.Context()).Info("dictionary deleted via API",
		slog.String("dictionary_id", id.String()),
		slog.String("subject", subject))

	w.WriteHeader(http.StatusNoContent)
}

// CheckText handles POST /api/dictionaries/{id}/segment requests
func (h *DictionaryHandler) CheckText(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req CheckTextRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	ok, err := h.dictionaryService.CheckText(r.Context(), id, req.Text)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check text")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SegmentResponse{Segmentable: ok})
}

// CheckBatch handles POST /api/dictionaries/{id}/segment/batch requests
func (h *DictionaryHandler) CheckBatch(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req BatchRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	results, err := h.dictionaryService.CheckBatch(r.Context(), id, req.Texts)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check batch")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, BatchResponse{Results: results})
}
