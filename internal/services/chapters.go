package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/NeroQue/course-generator-backend/internal/models"
	"github.com/NeroQue/course-generator-backend/pkg/llm"
	"github.com/NeroQue/course-generator-backend/pkg/parser"
)

// ChapterService expands a single chapter into a lesson table
type ChapterService struct {
	Generator llm.Generator // nil means no provider configured
	Timeout   time.Duration

	now func() time.Time
}

// NewChapterService creates the service, generator may be nil
func NewChapterService(generator llm.Generator, timeout time.Duration) *ChapterService {
	return &ChapterService{
		Generator: generator,
		Timeout:   timeout,
		now:       time.Now,
	}
}

// Detail generates the lesson table for req, falling back to a template on
// any provider problem. Only missing titles are an error.
func (s *ChapterService) Detail(ctx context.Context, req models.ChapterDetailRequest) (models.ChapterDetail, error) {
	req.ChapterTitle = strings.TrimSpace(req.ChapterTitle)
	req.CourseTitle = strings.TrimSpace(req.CourseTitle)
	if req.ChapterTitle == "" || req.CourseTitle == "" {
		return models.ChapterDetail{}, fmt.Errorf("%w: chapterTitle and courseTitle are required", ErrValidation)
	}

	if s.Generator == nil {
		log.Info("No generative provider configured, using template chapter detail", "chapter", req.ChapterTitle)
		return FallbackChapterDetail(req, s.now()), nil
	}

	detail, err := s.generate(ctx, req)
	if err != nil {
		log.Warn("Chapter detail generation failed, using template", "chapter", req.ChapterTitle, "err", err)
		return FallbackChapterDetail(req, s.now()), nil
	}
	return detail, nil
}

func (s *ChapterService) generate(ctx context.Context, req models.ChapterDetailRequest) (models.ChapterDetail, error) {
	text, err := generateWithTimeout(ctx, s.Generator, chapterDetailPrompt(req), s.Timeout)
	if err != nil {
		return models.ChapterDetail{}, err
	}

	obj, err := parser.ParseObject(text)
	if err != nil {
		return models.ChapterDetail{}, fmt.Errorf("parsing chapter detail: %w", err)
	}

	rows := parser.Objects(obj.Get("lessons"))
	if len(rows) == 0 {
		return models.ChapterDetail{}, errNoLessons
	}

	// every row gets all five fields, missing ones as ""
	lessons := make([]models.Lesson, len(rows))
	for i, row := range rows {
		lessons[i] = models.Lesson{
			ID:           parser.Text(row.Get("id")),
			Topic:        parser.Text(row.Get("topic")),
			LearningGoal: parser.Text(row.Get("learningGoal")),
			VideoTopic:   parser.Text(row.Get("videoTopic")),
			ResourceNote: parser.Text(row.Get("resourceNote")),
		}
	}

	return models.ChapterDetail{
		ChapterTitle:       req.ChapterTitle,
		CourseTitle:        req.CourseTitle,
		Lessons:            lessons,
		KeyConcepts:        parser.StringListOr(obj.Get("keyConcepts"), fallbackKeyConcepts(req.ChapterTitle)),
		LearningOutcomes:   parser.StringListOr(obj.Get("learningOutcomes"), fallbackOutcomes(req.ChapterTitle)),
		PracticalExercises: parser.StringListOr(obj.Get("practicalExercises"), fallbackExercises(req.ChapterTitle)),
		Resources:          parser.StringListOr(obj.Get("resources"), fallbackResources(req.CourseTitle, req.ChapterTitle)),
		GeneratedAt:        s.now(),
		Source:             models.SourceGenerated,
	}, nil
}
