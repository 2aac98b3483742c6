package models

import "time"

// ChapterDetailRequest is what we expect when expanding one chapter
type ChapterDetailRequest struct {
	ChapterTitle string `json:"chapterTitle"`
	CourseTitle  string `json:"courseTitle"`
	CourseTopic  string `json:"courseTopic,omitempty"`
	Difficulty   string `json:"difficulty,omitempty"`
}

// ChapterDetail is the lesson table for a single chapter
type ChapterDetail struct {
	ChapterTitle string `json:"chapterTitle"`
	CourseTitle  string `json:"courseTitle"`

	Lessons []Lesson `json:"lessons"` // never empty

	KeyConcepts        []string `json:"keyConcepts"`
	LearningOutcomes   []string `json:"learningOutcomes"`
	PracticalExercises []string `json:"practicalExercises"`
	Resources          []string `json:"resources"`

	GeneratedAt time.Time `json:"generatedAt"`
	Source      Source    `json:"source"`
}

// Lesson is one row of the lesson table - every field is always present
type Lesson struct {
	ID           string `json:"id"`
	Topic        string `json:"topic"`
	LearningGoal string `json:"learningGoal"`
	VideoTopic   string `json:"videoTopic"`
	ResourceNote string `json:"resourceNote"`
}
