package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/NeroQue/course-generator-backend/internal/models"
	"github.com/NeroQue/course-generator-backend/pkg/llm"
	"github.com/NeroQue/course-generator-backend/pkg/parser"
	"github.com/NeroQue/course-generator-backend/pkg/task"
)

// VideoFinder finds videos for a chapter topic
type VideoFinder interface {
	Find(ctx context.Context, topic string, count int) []models.VideoReference
}

// CourseConfig holds the knobs for course generation
type CourseConfig struct {
	Timeout     time.Duration // per generative call
	Concurrency int           // chapters enriched at once
}

// CourseService generates course documents
type CourseService struct {
	Generator llm.Generator // nil means no provider configured
	Videos    VideoFinder
	Config    CourseConfig

	now func() time.Time
}

// NewCourseService creates the service. generator and videos may be nil.
func NewCourseService(generator llm.Generator, videos VideoFinder, config CourseConfig) *CourseService {
	if config.Concurrency <= 0 {
		config.Concurrency = 15
	}
	return &CourseService{
		Generator: generator,
		Videos:    videos,
		Config:    config,
		now:       time.Now,
	}
}

// Generate builds a course for req. It only fails on bad input - provider
// trouble of any kind ends up as a fallback document.
func (s *CourseService) Generate(ctx context.Context, req models.CourseRequest, createdBy string) (models.CourseDocument, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		return models.CourseDocument{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	req = req.WithDefaults()

	var doc models.CourseDocument
	if s.Generator == nil {
		log.Info("No generative provider configured, using template course", "title", req.Title)
		doc = FallbackCourse(req, s.now())
	} else {
		generated, err := s.generate(ctx, req)
		if err != nil {
			log.Warn("Course generation failed, using template course", "title", req.Title, "err", err)
			doc = FallbackCourse(req, s.now())
		} else {
			doc = generated
		}
	}

	doc.CreatedBy = createdBy
	s.enrich(ctx, doc.Title, doc.Chapters)

	log.Info("Generated course", "id", doc.ID, "title", doc.Title, "chapters", len(doc.Chapters), "source", doc.Source)
	return doc, nil
}

func (s *CourseService) generate(ctx context.Context, req models.CourseRequest) (models.CourseDocument, error) {
	text, err := generateWithTimeout(ctx, s.Generator, coursePrompt(req), s.Config.Timeout)
	if err != nil {
		return models.CourseDocument{}, err
	}

	obj, err := parser.ParseObject(text)
	if err != nil {
		return models.CourseDocument{}, fmt.Errorf("parsing course: %w", err)
	}

	parsed := parser.Objects(obj.Get("chapters"))
	if len(parsed) == 0 {
		return models.CourseDocument{}, errNoChapters
	}

	chapters := make([]models.Chapter, req.ChapterCount)
	for i := range chapters {
		if i < len(parsed) {
			chapters[i] = chapterFromJSON(parsed[i], i, req)
		} else {
			chapters[i] = fallbackChapter(i, req)
		}
	}

	return models.CourseDocument{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   parser.TextOr(obj.Get("description"), fallbackDescription(req)),
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		Objectives:    exactlyThree(parser.StringList(obj.Get("objectives")), fallbackObjectives(req.Title)),
		LearningPath:  parser.StringListOr(obj.Get("learningPath"), fallbackLearningPath(req.Title)),
		TotalDuration: parser.TextOr(obj.Get("totalDuration"), totalDuration(req.ChapterCount)),
		Chapters:      chapters,
		CreatedAt:     s.now(),
		Source:        models.SourceGenerated,
	}, nil
}

// chapterFromJSON reads one generated chapter, filling gaps from the template
func chapterFromJSON(c gjson.Result, index int, req models.CourseRequest) models.Chapter {
	def := fallbackChapter(index, req)

	links := sourceLinks(c.Get("sourceLinks"))
	if len(links) == 0 {
		links = def.SourceLinks
	}

	return models.Chapter{
		ID:              index + 1,
		Title:           parser.TextOr(c.Get("title"), def.Title),
		Description:     parser.TextOr(c.Get("description"), def.Description),
		KeyPoints:       parser.StringListOr(c.Get("keyPoints"), def.KeyPoints),
		DetailedContent: parser.TextOr(c.Get("detailedContent"), def.DetailedContent),
		EstimatedTime:   parser.TextOr(c.Get("estimatedTime"), def.EstimatedTime),
		Notes: models.ChapterNotes{
			MainConcepts:   parser.StringListOr(c.Get("notes.mainConcepts"), def.Notes.MainConcepts),
			CommonMistakes: parser.StringListOr(c.Get("notes.commonMistakes"), def.Notes.CommonMistakes),
			BestPractices:  parser.StringListOr(c.Get("notes.bestPractices"), def.Notes.BestPractices),
		},
		Roadmap:     parser.StringListOr(c.Get("roadmap"), def.Roadmap),
		Videos:      []models.VideoReference{},
		SourceLinks: links,
	}
}

// sourceLinks accepts {title, url} objects or bare url strings
func sourceLinks(r gjson.Result) []models.SourceLink {
	if !r.IsArray() {
		return nil
	}

	var links []models.SourceLink
	for _, item := range r.Array() {
		if item.IsObject() {
			link := models.SourceLink{
				Title: parser.Text(item.Get("title")),
				URL:   parser.Text(item.Get("url")),
			}
			if link.URL == "" {
				continue
			}
			if link.Title == "" {
				link.Title = link.URL
			}
			links = append(links, link)
			continue
		}
		if u := parser.Text(item); u != "" {
			links = append(links, models.SourceLink{Title: u, URL: u})
		}
	}
	return links
}

// exactlyThree truncates or pads with defaults
func exactlyThree(items, defaults []string) []string {
	out := make([]string, 0, 3)
	for _, item := range items {
		if len(out) == 3 {
			break
		}
		out = append(out, item)
	}
	for i := len(out); i < 3; i++ {
		out = append(out, defaults[i])
	}
	return out
}

// enrich attaches videos to every chapter, one search per chapter
func (s *CourseService) enrich(ctx context.Context, courseTitle string, chapters []models.Chapter) {
	topic := func(i int) string {
		return courseTitle + " " + chapters[i].Title
	}

	results := task.Run(ctx, s.Config.Concurrency, len(chapters), func(ctx context.Context, i int) ([]models.VideoReference, error) {
		if s.Videos == nil {
			return nil, nil
		}
		return s.Videos.Find(ctx, topic(i), DefaultVideoCount), nil
	})

	for i, res := range results {
		if res.Err != nil {
			log.Warn("Chapter enrichment failed", "chapter", chapters[i].ID, "err", res.Err)
		}
		if res.Err != nil || len(res.Value) == 0 {
			chapters[i].Videos = PlaceholderVideos(topic(i))
			continue
		}
		if len(res.Value) > DefaultVideoCount {
			res.Value = res.Value[:DefaultVideoCount]
		}
		chapters[i].Videos = res.Value
	}
}
