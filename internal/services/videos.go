package services

import (
	"context"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/NeroQue/course-generator-backend/internal/models"
	"github.com/NeroQue/course-generator-backend/pkg/youtube"
)

// DefaultVideoCount is how many videos a chapter gets
const DefaultVideoCount = 3

// VideoSearcher is the slice of the video API we need
type VideoSearcher interface {
	Search(ctx context.Context, query string, max int) ([]youtube.Candidate, error)
	Details(ctx context.Context, ids []string) ([]youtube.Details, error)
}

// VideoService turns a topic into a ranked list of video references
type VideoService struct {
	Searcher VideoSearcher // nil means no API key, always empty
	Timeout  time.Duration // per call
}

// NewVideoService creates the service, searcher may be nil
func NewVideoService(searcher VideoSearcher, timeout time.Duration) *VideoService {
	return &VideoService{
		Searcher: searcher,
		Timeout:  timeout,
	}
}

// Find returns up to count videos for the topic. Any failure gives an empty list.
func (s *VideoService) Find(ctx context.Context, topic string, count int) []models.VideoReference {
	if s == nil || s.Searcher == nil || count <= 0 {
		return []models.VideoReference{}
	}

	candidates, err := s.search(ctx, topic, count+2)
	if err != nil {
		log.Warn("Video search failed", "topic", topic, "err", err)
		return []models.VideoReference{}
	}
	if len(candidates) == 0 {
		return []models.VideoReference{}
	}

	if len(candidates) > count {
		candidates = candidates[:count]
	}
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.VideoID
	}

	details, err := s.details(ctx, ids)
	if err != nil {
		log.Warn("Video details lookup failed", "topic", topic, "err", err)
		return []models.VideoReference{}
	}
	byID := make(map[string]youtube.Details, len(details))
	for _, d := range details {
		byID[d.VideoID] = d
	}

	// rank follows search order, so a video missing from the details
	// keeps its slot with what the search snippet gave us
	videos := make([]models.VideoReference, 0, len(candidates))
	for i, c := range candidates {
		d, ok := byID[c.VideoID]
		if !ok {
			d = youtube.Details{VideoID: c.VideoID, Title: c.Title, Channel: c.Channel, Thumbnail: c.Thumbnail}
		}
		videos = append(videos, models.VideoReference{
			Title:      d.Title,
			Channel:    d.Channel,
			Duration:   FormatDuration(d.Duration),
			VideoID:    d.VideoID,
			Tag:        models.TagForRank(i),
			URL:        "https://www.youtube.com/watch?v=" + d.VideoID,
			ViewCount:  d.ViewCount,
			ViewsLabel: viewsLabel(d.ViewCount),
			Thumbnail:  d.Thumbnail,
		})
	}
	return videos
}

func (s *VideoService) search(ctx context.Context, topic string, max int) ([]youtube.Candidate, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Searcher.Search(ctx, topic, max)
}

func (s *VideoService) details(ctx context.Context, ids []string) ([]youtube.Details, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Searcher.Details(ctx, ids)
}

func (s *VideoService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.Timeout)
}

func viewsLabel(views uint64) string {
	if views == 1 {
		return "1 view"
	}
	return humanize.BigComma(new(big.Int).SetUint64(views)) + " views"
}

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// FormatDuration turns an ISO-8601 duration into the label shown on a video:
// "1h 5m" when there are hours, "12-17 min" when there are minutes, else "45 sec".
// Unparseable input gives an empty label.
func FormatDuration(iso string) string {
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil {
		return ""
	}

	num := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	hours := num(m[1])*24 + num(m[2])
	minutes := num(m[3])
	seconds := num(m[4])

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%d-%d min", minutes, minutes+5)
	default:
		return fmt.Sprintf("%d sec", seconds)
	}
}
