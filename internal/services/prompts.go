package services

import (
	"fmt"
	"strings"

	"github.com/NeroQue/course-generator-backend/internal/models"
)

const courseSchema = `{
  "title": "string",
  "description": "string",
  "objectives": ["exactly 3 strings"],
  "learningPath": ["string"],
  "totalDuration": "string, e.g. 12-15 hours",
  "chapters": [
    {
      "title": "string",
      "description": "string",
      "keyPoints": ["string"],
      "detailedContent": "string, a few paragraphs",
      "estimatedTime": "string, e.g. 1-2 hours",
      "notes": {
        "mainConcepts": ["string"],
        "commonMistakes": ["string"],
        "bestPractices": ["string"]
      },
      "roadmap": ["string"],
      "sourceLinks": [{"title": "string", "url": "string"}]
    }
  ]
}`

func coursePrompt(req models.CourseRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a %s-level course titled %q in the %s category.\n", req.Difficulty, req.Title, req.Category)
	if d := strings.TrimSpace(req.Description); d != "" {
		fmt.Fprintf(&b, "Course description: %s\n", d)
	}
	fmt.Fprintf(&b, "The course must have exactly %d chapters, in the order a learner should take them.\n", req.ChapterCount)
	b.WriteString("Return only JSON matching this schema, with no markdown and no commentary:\n")
	b.WriteString(courseSchema)

	return b.String()
}

const chapterDetailSchema = `{
  "lessons": [
    {
      "id": "string, e.g. 1",
      "topic": "string",
      "learningGoal": "string",
      "videoTopic": "string, a good video search phrase",
      "resourceNote": "string"
    }
  ],
  "keyConcepts": ["string"],
  "learningOutcomes": ["string"],
  "practicalExercises": ["string"],
  "resources": ["string"]
}`

func chapterDetailPrompt(req models.ChapterDetailRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Break down the chapter %q of the course %q into a lesson table.\n", req.ChapterTitle, req.CourseTitle)
	if topic := strings.TrimSpace(req.CourseTopic); topic != "" {
		fmt.Fprintf(&b, "Course topic: %s\n", topic)
	}
	if level := strings.TrimSpace(req.Difficulty); level != "" {
		fmt.Fprintf(&b, "Learner level: %s\n", level)
	}
	b.WriteString("Give between 4 and 6 lessons.\n")
	b.WriteString("Return only JSON matching this schema, with no markdown and no commentary:\n")
	b.WriteString(chapterDetailSchema)

	return b.String()
}
