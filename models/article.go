package models

import "time"

// Article is the canonical internal representation of one news item after
// markup stripping and field resolution. The ID is a pure function of the
// article's canonical link, so re-fetching the same item yields the same ID.
type Article struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	URL        string    `json:"url"`
	Source     string    `json:"source"`
	Language   string    `json:"language"`
	Region     string    `json:"region"`
	Published  time.Time `json:"published"`
	ImageURL   string    `json:"image_url,omitempty"`
	Categories []string  `json:"categories"`
}
