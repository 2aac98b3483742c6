package handlers

import (
	"errors"
	"net/http"

	"github.com/NeroQue/course-generator-backend/internal/models"
	"github.com/NeroQue/course-generator-backend/internal/services"
)

// ChapterHandler processes chapter detail requests
type ChapterHandler struct {
	Service *services.ChapterService
}

// NewChapterHandler creates handler with injected service
func NewChapterHandler(service *services.ChapterService) *ChapterHandler {
	return &ChapterHandler{Service: service}
}

// Details handles POST /chapters/details
func (h *ChapterHandler) Details(w http.ResponseWriter, r *http.Request) {
	var req models.ChapterDetailRequest
	if err := ValidateJSONBody(r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, "Invalid chapter request", err)
		return
	}

	detail, err := h.Service.Detail(r.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			SendErrorResponse(w, "chapterTitle and courseTitle are required", http.StatusBadRequest, "Invalid chapter request", err)
			return
		}
		SendErrorResponse(w, "Failed to generate chapter details", http.StatusInternalServerError, "Chapter detail error", err)
		return
	}

	SendJSON(w, http.StatusOK, detail)
}
