package feeds

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/evportal-ch/newshub/models"
)

const (
	// aggregationDeadline bounds one full fan-out so a single slow source
	// cannot stall the pass indefinitely. Each fetch still carries its own
	// shorter timeout.
	aggregationDeadline = 2 * time.Minute

	// titleKeyLength is the dedup prefix: two articles sharing the first 50
	// lowercased characters of their title count as the same story.
	titleKeyLength = 50
)

// Aggregator runs one fetch per configured source concurrently and merges
// the results into a single ordered, deduplicated article list.
type Aggregator struct {
	registry *Registry
	fetcher  *Fetcher
}

func NewAggregator(registry *Registry, fetcher *Fetcher) *Aggregator {
	return &Aggregator{registry: registry, fetcher: fetcher}
}

// Aggregate performs one complete aggregation pass. Sources are fetched
// concurrently with no ordering dependency between them; a failing source
// contributes zero articles and never aborts or delays its siblings beyond
// the join. The merge itself is a pure function of the collected articles:
// sort newest-first by publish time, then drop repeated titles keeping the
// first (most recent) occurrence.
func (a *Aggregator) Aggregate(ctx context.Context) []models.Article {
	ctx, cancel := context.WithTimeout(ctx, aggregationDeadline)
	defer cancel()

	sources := a.registry.All()

	var wg sync.WaitGroup
	var mu sync.Mutex
	var all []models.Article

	for _, source := range sources {
		wg.Add(1)
		go func(src models.FeedSource) {
			defer wg.Done()
			articles := a.fetcher.Fetch(ctx, src)
			mu.Lock()
			all = append(all, articles...)
			mu.Unlock()
		}(source)
	}
	wg.Wait()

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Published.After(all[j].Published)
	})

	unique := dedupeByTitle(all)
	log.Printf("INFO (Aggregator): Merged %d articles from %d sources (%d unique)", len(all), len(sources), len(unique))
	return unique
}

// dedupeByTitle walks a sorted list once, keeping the first occurrence of
// each title key. Because sorting precedes deduplication, the most recent
// copy of a repeated story survives.
func dedupeByTitle(articles []models.Article) []models.Article {
	seen := make(map[string]struct{}, len(articles))
	unique := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		key := titleKey(article.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, article)
	}
	return unique
}

func titleKey(title string) string {
	key := strings.ToLower(title)
	if runes := []rune(key); len(runes) > titleKeyLength {
		key = string(runes[:titleKeyLength])
	}
	return key
}
