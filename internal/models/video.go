package models

// VideoTag is the fixed positional label of a recommended video
type VideoTag string

const (
	TagBest          VideoTag = "best"          // first search hit
	TagPreferred     VideoTag = "preferred"     // second search hit
	TagSupplementary VideoTag = "supplementary" // everything after
)

// TagForRank maps a search position to its tag
func TagForRank(index int) VideoTag {
	switch index {
	case 0:
		return TagBest
	case 1:
		return TagPreferred
	default:
		return TagSupplementary
	}
}

// VideoReference is a video recommended for a chapter
type VideoReference struct {
	Title    string   `json:"title"`
	Channel  string   `json:"channel"`
	Duration string   `json:"duration"` // display label, not exact
	VideoID  string   `json:"videoId"`
	Tag      VideoTag `json:"tag"`
	URL      string   `json:"url"`

	ViewCount  uint64 `json:"viewCount"`
	ViewsLabel string `json:"viewsLabel,omitempty"` // e.g. "1,234,567 views"

	Thumbnail string `json:"thumbnail,omitempty"`
}
