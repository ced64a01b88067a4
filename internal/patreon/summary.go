package patreon

import "patreon-gateway/internal/types"

const untitled = "Untitled"

// Summarize maps a post record to its caller-facing shape.
func Summarize(p *PostData) types.PostSummary {
	s := types.PostSummary{ID: p.ID, Title: untitled, URL: PostURLPrefix + p.ID}
	a := p.Attributes
	if a == nil {
		return s
	}
	if a.Title != "" {
		s.Title = a.Title
	}
	if a.URL != "" {
		s.URL = a.URL
	}
	s.PublishedAt = a.PublishedAt
	s.Image = imageOf(a)
	return s
}

// SummarizeAll maps every record that has an id; the result is never nil.
func SummarizeAll(posts []*PostData) []types.PostSummary {
	out := make([]types.PostSummary, 0, len(posts))
	for _, p := range posts {
		if p == nil || p.ID == "" {
			continue
		}
		out = append(out, Summarize(p))
	}
	return out
}

// imageOf picks large image, then image, then thumbnail.
func imageOf(a *PostAttributes) *string {
	var candidates []string
	if a.Image != nil {
		candidates = append(candidates, a.Image.LargeURL, a.Image.URL)
	}
	candidates = append(candidates, a.ThumbnailURL)
	for _, c := range candidates {
		if c != "" {
			return &c
		}
	}
	return nil
}
