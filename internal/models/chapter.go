package models

// Chapter is one section of a generated course
type Chapter struct {
	ID          int    `json:"id"` // 1-based position in the course
	Title       string `json:"title"`
	Description string `json:"description"`

	KeyPoints       []string `json:"keyPoints"`
	DetailedContent string   `json:"detailedContent"`
	EstimatedTime   string   `json:"estimatedTime"`

	Notes   ChapterNotes `json:"notes"`
	Roadmap []string     `json:"roadmap"` // step by step study order

	Videos      []VideoReference `json:"videos"` // at most 3, ordered by tag
	SourceLinks []SourceLink     `json:"sourceLinks"`
}

// ChapterNotes is the study-notes block of a chapter
type ChapterNotes struct {
	MainConcepts   []string `json:"mainConcepts"`
	CommonMistakes []string `json:"commonMistakes"`
	BestPractices  []string `json:"bestPractices"`
}

// SourceLink points at further reading for a chapter
type SourceLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}
