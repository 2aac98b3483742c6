package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NeroQue/course-generator-backend/internal/models"
	"github.com/NeroQue/course-generator-backend/pkg/youtube"
)

func TestFormatDuration(t *testing.T) {
	tests := map[string]string{
		"PT1H5M0S":  "1h 5m",
		"PT12M0S":   "12-17 min",
		"PT0H0M45S": "45 sec",
		"PT2H":      "2h 0m",
		"PT3M20S":   "3-8 min",
		"P1DT2H3M":  "26h 3m",
		"PT0S":      "0 sec",
		"":          "",
		"12:30":     "",
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, FormatDuration(input))
		})
	}
}

func TestVideoService_Find(t *testing.T) {
	searcher := &fakeSearcher{
		candidates: []youtube.Candidate{
			{VideoID: "v1"}, {VideoID: "v2"}, {VideoID: "v3"}, {VideoID: "v4"}, {VideoID: "v5"},
		},
		details: []youtube.Details{
			{VideoID: "v1", Title: "Go in 100 seconds", Channel: "Fireship", Duration: "PT1M40S", ViewCount: 1234567, Thumbnail: "t1.jpg"},
			{VideoID: "v2", Title: "Go tutorial", Channel: "Academy", Duration: "PT1H5M0S", ViewCount: 1},
			{VideoID: "v3", Title: "Go intro", Channel: "Talks", Duration: "PT0H0M45S", ViewCount: 999},
		},
	}
	svc := NewVideoService(searcher, time.Second)

	videos := svc.Find(context.Background(), "golang basics", 3)

	assert.Equal(t, "golang basics", searcher.gotQuery)
	assert.Equal(t, 5, searcher.gotMax)
	assert.Equal(t, []string{"v1", "v2", "v3"}, searcher.gotIDs)
	assert.True(t, searcher.hadDeadline)

	require.Len(t, videos, 3)
	assert.Equal(t, models.VideoReference{
		Title:      "Go in 100 seconds",
		Channel:    "Fireship",
		Duration:   "1-6 min",
		VideoID:    "v1",
		Tag:        models.TagBest,
		URL:        "https://www.youtube.com/watch?v=v1",
		ViewCount:  1234567,
		ViewsLabel: "1,234,567 views",
		Thumbnail:  "t1.jpg",
	}, videos[0])
	assert.Equal(t, models.TagPreferred, videos[1].Tag)
	assert.Equal(t, "1h 5m", videos[1].Duration)
	assert.Equal(t, "1 view", videos[1].ViewsLabel)
	assert.Equal(t, models.TagSupplementary, videos[2].Tag)
	assert.Equal(t, "45 sec", videos[2].Duration)
}

func TestVideoService_FindFailuresGiveEmptyList(t *testing.T) {
	tests := []struct {
		name     string
		searcher VideoSearcher
	}{
		{"no searcher", nil},
		{"no candidates", &fakeSearcher{}},
		{"search fails", &fakeSearcher{searchErr: errors.New("quota")}},
		{"details fail", &fakeSearcher{
			candidates: []youtube.Candidate{{VideoID: "v1"}},
			detailsErr: errors.New("timeout"),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewVideoService(tt.searcher, time.Second)
			videos := svc.Find(context.Background(), "anything", 3)
			assert.NotNil(t, videos)
			assert.Empty(t, videos)
		})
	}
}

func TestVideoService_FindFewerThanCount(t *testing.T) {
	searcher := &fakeSearcher{
		candidates: []youtube.Candidate{{VideoID: "only"}},
		details:    []youtube.Details{{VideoID: "only", Duration: "PT5M"}},
	}
	svc := NewVideoService(searcher, 0)

	videos := svc.Find(context.Background(), "rare topic", 3)
	require.Len(t, videos, 1)
	assert.Equal(t, models.TagBest, videos[0].Tag)
	assert.Equal(t, []string{"only"}, searcher.gotIDs)
}

func TestVideoService_FindKeepsSearchRankWhenDetailsMissing(t *testing.T) {
	searcher := &fakeSearcher{
		candidates: []youtube.Candidate{
			{VideoID: "a", Title: "A from search", Channel: "Chan A", Thumbnail: "a.jpg"},
			{VideoID: "b"}, {VideoID: "c"}, {VideoID: "d"},
		},
		// a went private between search and details
		details: []youtube.Details{
			{VideoID: "b", Title: "B", Duration: "PT4M"},
			{VideoID: "c", Title: "C", Duration: "PT9M"},
		},
	}
	svc := NewVideoService(searcher, time.Second)

	videos := svc.Find(context.Background(), "topic", 3)

	assert.Equal(t, []string{"a", "b", "c"}, searcher.gotIDs)
	require.Len(t, videos, 3)

	tags := map[string]models.VideoTag{}
	for _, v := range videos {
		tags[v.VideoID] = v.Tag
	}
	assert.Equal(t, map[string]models.VideoTag{
		"a": models.TagBest,
		"b": models.TagPreferred,
		"c": models.TagSupplementary,
	}, tags)

	assert.Equal(t, "A from search", videos[0].Title)
	assert.Equal(t, "Chan A", videos[0].Channel)
	assert.Equal(t, "a.jpg", videos[0].Thumbnail)
	assert.Empty(t, videos[0].Duration)
	assert.Equal(t, "https://www.youtube.com/watch?v=a", videos[0].URL)
}

func TestViewsLabel(t *testing.T) {
	tests := map[uint64]string{
		0:                    "0 views",
		1:                    "1 view",
		999:                  "999 views",
		1234567:              "1,234,567 views",
		18446744073709551615: "18,446,744,073,709,551,615 views",
	}

	for views, want := range tests {
		assert.Equal(t, want, viewsLabel(views))
	}
}
