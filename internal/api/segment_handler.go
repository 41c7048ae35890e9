package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/wordsplit/internal/api/shared"
	"github.com/phrazzld/wordsplit/internal/domain/segment"
	"github.com/phrazzld/wordsplit/internal/platform/logger"
)

// SegmentHandler answers ad-hoc segmentation checks where the caller sends
// the dictionary with the text.
type SegmentHandler struct {
	segmenter segment.Service
}

// NewSegmentHandler creates a new SegmentHandler
func NewSegmentHandler(segmenter segment.Service) *SegmentHandler {
	return &SegmentHandler{segmenter: segmenter}
}

// Segment handles POST /api/segment requests
func (h *SegmentHandler) Segment(w http.ResponseWriter, r *http.Request) {
	var req SegmentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}

	ok, err := h.segmenter.Check(req.Text, req.Words)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to check text")
		return
	}

	logger.FromContext(r.Context()).Debug("segmentation checked",
		slog.Int("text_length", len(req.Text)),
		slog.Int("word_count", len(req.Words)),
		slog.Bool("segmentable", ok))

	shared.RespondWithJSON(w, r, http.StatusOK, SegmentResponse{Segmentable: ok})
}
