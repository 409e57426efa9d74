package models

// FeedSource is one configured RSS/Atom endpoint with locale metadata.
// Sources are immutable and loaded at process start.
type FeedSource struct {
	URL         string `json:"url"`
	Name        string `json:"name"`
	Language    string `json:"language"`
	Region      string `json:"region"`       // ISO-ish country code, e.g. CH, DE, US
	RegionGroup string `json:"region_group"` // swiss, german, international, balkan
}
