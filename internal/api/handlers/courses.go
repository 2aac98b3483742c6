package handlers

import (
	"errors"
	"net/http"

	"github.com/NeroQue/course-generator-backend/internal/models"
	"github.com/NeroQue/course-generator-backend/internal/services"
	"github.com/NeroQue/course-generator-backend/pkg/session"
)

// MinChapters is the smallest course we'll generate
const MinChapters = 3

// CourseHandler processes course generation requests
type CourseHandler struct {
	Service     *services.CourseService
	MaxChapters int
}

// NewCourseHandler creates handler with injected service
func NewCourseHandler(service *services.CourseService, maxChapters int) *CourseHandler {
	if maxChapters < MinChapters {
		maxChapters = MinChapters
	}
	return &CourseHandler{Service: service, MaxChapters: maxChapters}
}

// Generate handles POST /courses/generate - returns a full course document
func (h *CourseHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req models.CourseRequest
	if err := ValidateJSONBody(r, &req); err != nil {
		SendErrorResponse(w, err.Error(), http.StatusBadRequest, "Invalid course request", err)
		return
	}
	req.ChapterCount = ClampChapters(req.ChapterCount, h.MaxChapters)

	identity := session.IdentityFromContext(r.Context())

	doc, err := h.Service.Generate(r.Context(), req, identity.User.UID)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			SendErrorResponse(w, "Title is required", http.StatusBadRequest, "Invalid course request", err)
			return
		}
		SendErrorResponse(w, "Failed to generate course", http.StatusInternalServerError, "Course generation error", err)
		return
	}

	SendJSON(w, http.StatusOK, doc)
}

// ClampChapters applies the chapter count rules: missing means the default,
// otherwise it's held between MinChapters and max
func ClampChapters(n, max int) int {
	switch {
	case n <= 0:
		n = models.DefaultChapterCount
	case n < MinChapters:
		n = MinChapters
	}
	if n > max {
		n = max
	}
	return n
}
