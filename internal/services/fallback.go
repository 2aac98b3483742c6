package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/NeroQue/course-generator-backend/internal/models"
)

// chapter title templates, one per position - %s is the course title
var chapterThemes = []string{
	"Introduction to %s",
	"Core Concepts of %s",
	"Setting Up Your %s Environment",
	"Hands-On %s Fundamentals",
	"Intermediate %s Techniques",
	"Working with Real %s Projects",
	"Advanced %s Topics",
	"%s Best Practices",
	"Testing and Debugging in %s",
	"%s Performance and Optimization",
	"The %s Tooling Ecosystem",
	"Scaling %s",
	"%s Case Studies",
	"%s Capstone Project",
	"Next Steps with %s",
}

func chapterTitle(index int, courseTitle string) string {
	if index < len(chapterThemes) {
		return fmt.Sprintf(chapterThemes[index], courseTitle)
	}
	return fmt.Sprintf("%s Deep Dive %d", courseTitle, index+1)
}

// FallbackCourse builds the template course used whenever generation isn't
// possible. Everything except the id and timestamp depends only on req.
func FallbackCourse(req models.CourseRequest, now time.Time) models.CourseDocument {
	req = req.WithDefaults()

	chapters := make([]models.Chapter, req.ChapterCount)
	for i := range chapters {
		chapters[i] = fallbackChapter(i, req)
	}

	return models.CourseDocument{
		ID:            uuid.NewString(),
		Title:         req.Title,
		Description:   fallbackDescription(req),
		Category:      req.Category,
		Difficulty:    req.Difficulty,
		Objectives:    fallbackObjectives(req.Title),
		LearningPath:  fallbackLearningPath(req.Title),
		TotalDuration: totalDuration(req.ChapterCount),
		Chapters:      chapters,
		CreatedAt:     now,
		Source:        models.SourceFallback,
	}
}

func fallbackDescription(req models.CourseRequest) string {
	if d := strings.TrimSpace(req.Description); d != "" {
		return d
	}
	return fmt.Sprintf("A %s-level course that takes you through %s step by step, from the basics to practical projects.",
		strings.ToLower(req.Difficulty), req.Title)
}

func fallbackObjectives(title string) []string {
	return []string{
		fmt.Sprintf("Understand the core concepts of %s", title),
		fmt.Sprintf("Apply %s techniques to practical problems", title),
		fmt.Sprintf("Build a complete project using %s", title),
	}
}

func fallbackLearningPath(title string) []string {
	return []string{
		fmt.Sprintf("Learn the fundamentals of %s", title),
		"Practice with guided exercises",
		"Work through real-world examples",
		fmt.Sprintf("Complete a %s project on your own", title),
	}
}

func totalDuration(chapters int) string {
	hours := chapters * 2
	return fmt.Sprintf("%d-%d hours", hours, hours+chapters)
}

// fallbackChapter is the template chapter at position index (0-based)
func fallbackChapter(index int, req models.CourseRequest) models.Chapter {
	title := chapterTitle(index, req.Title)

	return models.Chapter{
		ID:          index + 1,
		Title:       title,
		Description: fmt.Sprintf("This chapter covers %s.", title),
		KeyPoints: []string{
			fmt.Sprintf("Key ideas behind %s", title),
			"Common patterns and when to use them",
			"How this chapter builds on the previous one",
		},
		DetailedContent: fmt.Sprintf("%s covers the ideas you need at the %s level. "+
			"Read through the key points, watch the recommended videos and finish with the exercises in the roadmap.",
			title, strings.ToLower(req.Difficulty)),
		EstimatedTime: "1-2 hours",
		Notes: models.ChapterNotes{
			MainConcepts:   []string{fmt.Sprintf("The main building blocks of %s", title)},
			CommonMistakes: []string{"Skipping the fundamentals before moving on", "Not practising with real examples"},
			BestPractices:  []string{"Take notes as you go", "Build something small after each section"},
		},
		Roadmap: []string{
			"Read the chapter overview",
			"Watch the recommended videos",
			"Practice with a small example",
			"Review the key points",
		},
		Videos:      []models.VideoReference{},
		SourceLinks: fallbackSourceLinks(req.Title, title),
	}
}

func fallbackSourceLinks(courseTitle, chapterTitle string) []models.SourceLink {
	query := url.QueryEscape(courseTitle + " " + chapterTitle)
	return []models.SourceLink{
		{Title: "Documentation search", URL: "https://www.google.com/search?q=" + query + "+documentation"},
		{Title: "Tutorial search", URL: "https://www.google.com/search?q=" + query + "+tutorial"},
	}
}

// PlaceholderVideos is the fixed triple used when a chapter gets no real videos
func PlaceholderVideos(topic string) []models.VideoReference {
	labels := []string{"tutorial", "explained", "crash course"}

	videos := make([]models.VideoReference, len(labels))
	for i, label := range labels {
		query := topic + " " + label
		videos[i] = models.VideoReference{
			Title:    fmt.Sprintf("%s %s", topic, label),
			Channel:  "YouTube",
			Duration: "Varies",
			Tag:      models.TagForRank(i),
			URL:      "https://www.youtube.com/results?search_query=" + url.QueryEscape(query),
		}
	}
	return videos
}

// FallbackChapterDetail builds the template lesson table for one chapter
func FallbackChapterDetail(req models.ChapterDetailRequest, now time.Time) models.ChapterDetail {
	topics := []string{"Overview", "Key Concepts", "Hands-On Practice", "Common Pitfalls", "Review and Next Steps"}

	lessons := make([]models.Lesson, len(topics))
	for i, topic := range topics {
		lessons[i] = models.Lesson{
			ID:           strconv.Itoa(i + 1),
			Topic:        fmt.Sprintf("%s: %s", req.ChapterTitle, topic),
			LearningGoal: fmt.Sprintf("Get comfortable with the %s of %s", strings.ToLower(topic), req.ChapterTitle),
			VideoTopic:   fmt.Sprintf("%s %s %s", req.CourseTitle, req.ChapterTitle, strings.ToLower(topic)),
			ResourceNote: "Look for the official documentation and a beginner-friendly tutorial",
		}
	}

	return models.ChapterDetail{
		ChapterTitle:       req.ChapterTitle,
		CourseTitle:        req.CourseTitle,
		Lessons:            lessons,
		KeyConcepts:        fallbackKeyConcepts(req.ChapterTitle),
		LearningOutcomes:   fallbackOutcomes(req.ChapterTitle),
		PracticalExercises: fallbackExercises(req.ChapterTitle),
		Resources:          fallbackResources(req.CourseTitle, req.ChapterTitle),
		GeneratedAt:        now,
		Source:             models.SourceFallback,
	}
}

func fallbackKeyConcepts(chapter string) []string {
	return []string{
		fmt.Sprintf("Fundamentals of %s", chapter),
		"Terminology you will see again later",
		"How the pieces fit together",
	}
}

func fallbackOutcomes(chapter string) []string {
	return []string{
		fmt.Sprintf("Explain the main ideas of %s", chapter),
		fmt.Sprintf("Use %s in a small project", chapter),
	}
}

func fallbackExercises(chapter string) []string {
	return []string{
		fmt.Sprintf("Write a short summary of %s in your own words", chapter),
		"Rebuild one of the examples from scratch",
	}
}

func fallbackResources(course, chapter string) []string {
	return []string{
		fmt.Sprintf("Official %s documentation", course),
		fmt.Sprintf("Video tutorials on %s", chapter),
	}
}
