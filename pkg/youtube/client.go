// Package youtube is a thin client over the YouTube Data API v3 search and
// videos endpoints.
package youtube

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// ErrMissingAPIKey is returned by New when no key is configured
var ErrMissingAPIKey = errors.New("youtube API key is not set")

// Candidate is one ranked search hit
type Candidate struct {
	VideoID   string
	Title     string
	Channel   string
	Thumbnail string
}

// Details is what the videos endpoint tells us about one video
type Details struct {
	VideoID   string
	Title     string
	Channel   string
	Thumbnail string
	Duration  string // ISO-8601, e.g. PT12M3S
	ViewCount uint64
}

// Client talks to the Data API with an API key
type Client struct {
	service *yt.Service
}

// New creates a client. Extra client options are passed straight through,
// tests use option.WithEndpoint.
func New(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &Client{service: service}, nil
}

// Search returns up to max ranked video hits for the query, in API order
func (c *Client) Search(ctx context.Context, query string, max int) ([]Candidate, error) {
	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(max)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	candidates := make([]Candidate, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Id == nil || item.Id.VideoId == "" {
			continue
		}

		candidate := Candidate{VideoID: item.Id.VideoId}
		if item.Snippet != nil {
			candidate.Title = item.Snippet.Title
			candidate.Channel = item.Snippet.ChannelTitle
			candidate.Thumbnail = thumbnailURL(item.Snippet.Thumbnails)
		}
		candidates = append(candidates, candidate)
	}

	return candidates, nil
}

// Details fetches duration, stats and snippet for the ids in one batched call.
// The result follows the order of ids; ids the API doesn't know are left out.
func (c *Client) Details(ctx context.Context, ids []string) ([]Details, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	resp, err := c.service.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
		Id(ids...).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("youtube videos: %w", err)
	}

	byID := make(map[string]Details, len(resp.Items))
	for _, item := range resp.Items {
		d := Details{VideoID: item.Id}
		if item.Snippet != nil {
			d.Title = item.Snippet.Title
			d.Channel = item.Snippet.ChannelTitle
			d.Thumbnail = thumbnailURL(item.Snippet.Thumbnails)
		}
		if item.ContentDetails != nil {
			d.Duration = item.ContentDetails.Duration
		}
		if item.Statistics != nil {
			d.ViewCount = item.Statistics.ViewCount
		}
		byID[item.Id] = d
	}

	details := make([]Details, 0, len(byID))
	for _, id := range ids {
		if d, ok := byID[id]; ok {
			details = append(details, d)
		}
	}
	return details, nil
}

// thumbnailURL picks the biggest thumbnail we're likely to get
func thumbnailURL(t *yt.ThumbnailDetails) string {
	if t == nil {
		return ""
	}
	for _, thumb := range []*yt.Thumbnail{t.High, t.Medium, t.Default} {
		if thumb != nil && thumb.Url != "" {
			return thumb.Url
		}
	}
	return ""
}
