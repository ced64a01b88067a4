package patreon

import "encoding/json"

// IdentityResponse is the body of GET /identity?include=campaign.
type IdentityResponse struct {
	Included []*Include `json:"included"`
}

// Include is one entry of a JSON:API "included" array.
type Include struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// PostsResponse is the body of GET /campaigns/{id}/posts.
type PostsResponse struct {
	Data []*PostData `json:"data"`
}

type PostData struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes *PostAttributes `json:"attributes"`
}

type PostAttributes struct {
	Title string `json:"title"`
	// PublishedAt is passed through untouched, whatever its JSON type.
	PublishedAt  json.RawMessage `json:"published_at"`
	URL          string          `json:"url"`
	Image        *PostImage      `json:"image"`
	ThumbnailURL string          `json:"thumbnail_url"`
}

type PostImage struct {
	LargeURL string `json:"large_url"`
	URL      string `json:"url"`
}
