package types

import "encoding/json"

// PostSummary is one normalized post returned to callers.
// PublishedAt holds the upstream value verbatim and encodes as null when
// absent.
type PostSummary struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	PublishedAt json.RawMessage `json:"published_at"`
	URL         string          `json:"url"`
	Image       *string         `json:"image"`
}

// Envelope is the body of every /posts response. Posts is never nil so it
// always encodes as a JSON array.
type Envelope struct {
	Error   string        `json:"error,omitempty"`
	Details *string       `json:"details,omitempty"`
	Posts   []PostSummary `json:"posts"`
}

// OK wraps posts in a success envelope.
func OK(posts []PostSummary) Envelope {
	if posts == nil {
		posts = []PostSummary{}
	}
	return Envelope{Posts: posts}
}

// Failed builds an error envelope with an empty post list.
func Failed(msg string, details *string) Envelope {
	return Envelope{Error: msg, Details: details, Posts: []PostSummary{}}
}
