package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/NeroQue/course-generator-backend/internal/models"
	"github.com/NeroQue/course-generator-backend/pkg/youtube"
)

// fakeGenerator answers every prompt with the same text or error
type fakeGenerator struct {
	text  string
	err   error
	stall chan struct{} // when set, Generate waits on it and ignores ctx

	mu      sync.Mutex
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.stall != nil {
		<-f.stall
	}
	return f.text, f.err
}

func (f *fakeGenerator) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}

// fakeFinder hands out videos per topic
type fakeFinder struct {
	videos func(topic string) []models.VideoReference

	mu     sync.Mutex
	topics []string
}

func (f *fakeFinder) Find(ctx context.Context, topic string, count int) []models.VideoReference {
	f.mu.Lock()
	f.topics = append(f.topics, topic)
	f.mu.Unlock()

	if f.videos == nil {
		return []models.VideoReference{}
	}
	return f.videos(topic)
}

func (f *fakeFinder) Topics() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.topics...)
}

// fakeSearcher is a canned video API
type fakeSearcher struct {
	candidates []youtube.Candidate
	details    []youtube.Details
	searchErr  error
	detailsErr error

	gotQuery    string
	gotMax      int
	gotIDs      []string
	hadDeadline bool
}

func (f *fakeSearcher) Search(ctx context.Context, query string, max int) ([]youtube.Candidate, error) {
	f.gotQuery = query
	f.gotMax = max
	_, f.hadDeadline = ctx.Deadline()
	return f.candidates, f.searchErr
}

func (f *fakeSearcher) Details(ctx context.Context, ids []string) ([]youtube.Details, error) {
	f.gotIDs = ids
	return f.details, f.detailsErr
}

// fakeProvider is a canned identity provider
type fakeProvider struct {
	identity models.ProviderIdentity
	err      error

	gotState string
	gotCode  string
}

func (f *fakeProvider) AuthCodeURL(state string) string {
	f.gotState = state
	return "https://accounts.example.com/auth?state=" + state
}

func (f *fakeProvider) Exchange(ctx context.Context, code string) (models.ProviderIdentity, error) {
	f.gotCode = code
	return f.identity, f.err
}

// fakeClock is a settable time source
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// assertChapterComplete checks a chapter has every field filled in
func assertChapterComplete(t *testing.T, ch models.Chapter, wantID int) {
	t.Helper()
	assert.Equal(t, wantID, ch.ID)
	assert.NotEmpty(t, ch.Title, "title")
	assert.NotEmpty(t, ch.Description, "description")
	assert.NotEmpty(t, ch.KeyPoints, "keyPoints")
	assert.NotEmpty(t, ch.DetailedContent, "detailedContent")
	assert.NotEmpty(t, ch.EstimatedTime, "estimatedTime")
	assert.NotEmpty(t, ch.Notes.MainConcepts, "notes.mainConcepts")
	assert.NotEmpty(t, ch.Notes.CommonMistakes, "notes.commonMistakes")
	assert.NotEmpty(t, ch.Notes.BestPractices, "notes.bestPractices")
	assert.NotEmpty(t, ch.Roadmap, "roadmap")
	assert.NotEmpty(t, ch.SourceLinks, "sourceLinks")

	if assert.NotEmpty(t, ch.Videos, "videos") {
		assert.LessOrEqual(t, len(ch.Videos), 3)
		for i, v := range ch.Videos {
			assert.Equal(t, models.TagForRank(i), v.Tag)
		}
	}
}
