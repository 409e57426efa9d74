package feeds

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/evportal-ch/newshub/models"
	"github.com/mmcdole/gofeed"
)

const (
	fetchTimeout      = 15 * time.Second
	maxEntriesPerFeed = 10

	userAgent        = "EVPortal-NewsHub/1.0"
	feedAcceptHeader = "application/atom+xml, application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.5"

	// Feeds occasionally ship entries without a title.
	defaultTitle = "Kein Titel"
)

// acceptTransport sets a feed-friendly Accept header on outgoing requests.
type acceptTransport struct {
	base http.RoundTripper
}

func (t acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", feedAcceptHeader)
	}
	return base.RoundTrip(clone)
}

// Fetcher retrieves and normalizes one feed at a time.
type Fetcher struct {
	client *http.Client
	now    func() time.Time
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Transport: acceptTransport{base: http.DefaultTransport}},
		now:    time.Now,
	}
}

// Fetch retrieves one source and returns its normalized articles, at most
// maxEntriesPerFeed of them. It never returns an error: transport failures,
// non-success statuses and malformed payloads are logged as warnings and
// yield zero articles, so a broken source cannot sink an aggregation pass.
func (f *Fetcher) Fetch(ctx context.Context, source models.FeedSource) []models.Article {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	// gofeed parsers are cheap and not documented as goroutine-safe,
	// so each fetch gets its own.
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent
	parser.Client = f.client

	feed, err := parser.ParseURLWithContext(source.URL, ctx)
	if err != nil {
		log.Printf("WARN (FeedFetcher): Error fetching feed %s: %v", source.Name, err)
		return nil
	}

	items := feed.Items
	if len(items) > maxEntriesPerFeed {
		items = items[:maxEntriesPerFeed]
	}

	articles := make([]models.Article, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		articles = append(articles, f.buildArticle(item, source))
	}
	return articles
}

// buildArticle normalizes a single feed entry. Every field resolves with a
// local fallback; a degraded entry still produces a valid article.
func (f *Fetcher) buildArticle(item *gofeed.Item, source models.FeedSource) models.Article {
	title := CleanText(item.Title)
	if title == "" {
		title = defaultTitle
	}
	summary := CleanText(itemSummary(item))

	return models.Article{
		ID:         ArticleID(item.Link),
		Title:      title,
		Summary:    summary,
		URL:        item.Link,
		Source:     source.Name,
		Language:   source.Language,
		Region:     source.Region,
		Published:  f.publishedAt(item),
		ImageURL:   itemImage(item),
		Categories: Categorize(title, summary),
	}
}

// publishedAt resolves the publication timestamp in priority order:
// parsed published date, parsed updated date, a lenient parse of the raw
// date strings, and finally the current fetch time.
func (f *Fetcher) publishedAt(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	for _, raw := range []string{item.Published, item.Updated} {
		if raw == "" {
			continue
		}
		if parsed, err := dateparse.ParseAny(raw); err == nil {
			return parsed.UTC()
		}
	}
	return f.now().UTC()
}

// itemSummary picks whichever textual body the entry carries.
func itemSummary(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}

// itemImage resolves an optional lead image: structured media attachments
// first, then the entry image, then the first enclosure declaring an image
// type.
func itemImage(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		for _, content := range media["content"] {
			if url := content.Attrs["url"]; url != "" {
				return url
			}
		}
	}
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enclosure := range item.Enclosures {
		if enclosure == nil {
			continue
		}
		if strings.HasPrefix(enclosure.Type, "image") && enclosure.URL != "" {
			return enclosure.URL
		}
	}
	return ""
}
