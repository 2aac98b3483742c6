package models

import (
	"encoding/json"
	"time"
)

// Source says which branch produced a document
type Source string

const (
	SourceGenerated Source = "generated" // parsed from the generative provider
	SourceFallback  Source = "fallback"  // deterministic template
)

// CourseDocument is a full generated course
type CourseDocument struct {
	ID string `json:"id"` // unique identifier

	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Difficulty  string `json:"difficulty"`

	Objectives    []string `json:"objectives"`   // always exactly 3
	LearningPath  []string `json:"learningPath"` // ordered milestones
	TotalDuration string   `json:"totalDuration"`

	Chapters []Chapter `json:"chapters"` // always exactly the requested count

	CreatedBy string    `json:"createdBy,omitempty"` // identity id from the auth gate
	CreatedAt time.Time `json:"createdAt"`
	Source    Source    `json:"source"`
}

// CourseRequest is what we expect when generating a course
type CourseRequest struct {
	Title        string `json:"title"`
	ChapterCount int    `json:"chapters"`
	Description  string `json:"description,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
	Category     string `json:"category,omitempty"`
}

// UnmarshalJSON takes chapters as a number or a numeric string. Anything
// else counts as not given.
func (r *CourseRequest) UnmarshalJSON(data []byte) error {
	type plain CourseRequest
	aux := struct {
		*plain
		ChapterCount json.RawMessage `json:"chapters"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	r.ChapterCount = chapterCount(aux.ChapterCount)
	return nil
}

func chapterCount(raw json.RawMessage) int {
	var n json.Number
	if len(raw) == 0 || json.Unmarshal(raw, &n) != nil {
		return 0
	}
	if i, err := n.Int64(); err == nil {
		return int(i)
	}
	if f, err := n.Float64(); err == nil {
		return int(f)
	}
	return 0
}

// defaults for optional course inputs
const (
	DefaultChapterCount = 7
	DefaultDifficulty   = "Beginner"
	DefaultCategory     = "Technology"
)

// WithDefaults fills in whatever the caller left out
func (r CourseRequest) WithDefaults() CourseRequest {
	if r.ChapterCount <= 0 {
		r.ChapterCount = DefaultChapterCount
	}
	if r.Difficulty == "" {
		r.Difficulty = DefaultDifficulty
	}
	if r.Category == "" {
		r.Category = DefaultCategory
	}
	return r
}
