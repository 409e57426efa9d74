package feeds

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/evportal-ch/newshub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryForSources(sources ...models.FeedSource) *Registry {
	return NewRegistry(map[string][]models.FeedSource{"test": sources}, []string{"test"})
}

func TestAggregateFaultIsolation(t *testing.T) {
	failing := feedServer(t, http.StatusBadGateway, "upstream down")
	healthy := feedServer(t, http.StatusOK, rssFeed(`
<item>
  <title>Erster Artikel</title>
  <link>https://example.com/1</link>
  <pubDate>Mon, 04 Aug 2025 10:00:00 GMT</pubDate>
</item>
<item>
  <title>Zweiter Artikel</title>
  <link>https://example.com/2</link>
  <pubDate>Mon, 04 Aug 2025 11:00:00 GMT</pubDate>
</item>
<item>
  <title>Dritter Artikel</title>
  <link>https://example.com/3</link>
  <pubDate>Mon, 04 Aug 2025 09:00:00 GMT</pubDate>
</item>`))

	registry := registryForSources(
		models.FeedSource{URL: failing.URL, Name: "Kaputt", Language: "de", Region: "CH"},
		models.FeedSource{URL: healthy.URL, Name: "Gesund", Language: "de", Region: "DE"},
	)

	articles := NewAggregator(registry, NewFetcher()).Aggregate(context.Background())
	require.Len(t, articles, 3)

	// All from the healthy source, newest first.
	for _, article := range articles {
		assert.Equal(t, "Gesund", article.Source)
	}
	assert.Equal(t, "Zweiter Artikel", articles[0].Title)
	assert.Equal(t, "Erster Artikel", articles[1].Title)
	assert.Equal(t, "Dritter Artikel", articles[2].Title)
}

func TestAggregateDeduplicatesByTitle(t *testing.T) {
	newer := feedServer(t, http.StatusOK, rssFeed(`
<item>
  <title>Neues Modell</title>
  <link>https://a.example.com/neues-modell</link>
  <pubDate>Mon, 04 Aug 2025 12:00:00 GMT</pubDate>
</item>`))
	older := feedServer(t, http.StatusOK, rssFeed(`
<item>
  <title>Neues Modell</title>
  <link>https://b.example.com/neues-modell</link>
  <pubDate>Mon, 04 Aug 2025 11:50:00 GMT</pubDate>
</item>`))

	registry := registryForSources(
		models.FeedSource{URL: newer.URL, Name: "Quelle A", Language: "de", Region: "CH"},
		models.FeedSource{URL: older.URL, Name: "Quelle B", Language: "de", Region: "DE"},
	)

	articles := NewAggregator(registry, NewFetcher()).Aggregate(context.Background())
	require.Len(t, articles, 1)

	// The most recent copy of the repeated story survives.
	assert.Equal(t, "https://a.example.com/neues-modell", articles[0].URL)
	assert.Equal(t, time.Date(2025, 8, 4, 12, 0, 0, 0, time.UTC), articles[0].Published)
}

func TestAggregateOrderInvariant(t *testing.T) {
	first := feedServer(t, http.StatusOK, rssFeed(`
<item>
  <title>Alpha</title>
  <link>https://example.com/alpha</link>
  <pubDate>Sun, 03 Aug 2025 08:00:00 GMT</pubDate>
</item>
<item>
  <title>Beta</title>
  <link>https://example.com/beta</link>
  <pubDate>Mon, 04 Aug 2025 08:00:00 GMT</pubDate>
</item>`))
	second := feedServer(t, http.StatusOK, rssFeed(`
<item>
  <title>Gamma</title>
  <link>https://example.com/gamma</link>
  <pubDate>Sat, 02 Aug 2025 08:00:00 GMT</pubDate>
</item>
<item>
  <title>Delta</title>
  <link>https://example.com/delta</link>
  <pubDate>Tue, 05 Aug 2025 08:00:00 GMT</pubDate>
</item>`))

	registry := registryForSources(
		models.FeedSource{URL: first.URL, Name: "Eins", Language: "de", Region: "CH"},
		models.FeedSource{URL: second.URL, Name: "Zwei", Language: "de", Region: "DE"},
	)

	articles := NewAggregator(registry, NewFetcher()).Aggregate(context.Background())
	require.Len(t, articles, 4)

	for i := 1; i < len(articles); i++ {
		assert.False(t, articles[i].Published.After(articles[i-1].Published),
			"articles out of order at index %d", i)
	}
}

func TestAggregateAllSourcesFailing(t *testing.T) {
	failing := feedServer(t, http.StatusInternalServerError, "down")
	registry := registryForSources(
		models.FeedSource{URL: failing.URL, Name: "Kaputt", Language: "de", Region: "CH"},
	)

	articles := NewAggregator(registry, NewFetcher()).Aggregate(context.Background())
	assert.NotNil(t, articles)
	assert.Empty(t, articles)
}

func TestDedupeByTitle(t *testing.T) {
	long := "Dies ist ein sehr langer Titel der die fünfzig Zeichen Grenze überschreitet"
	articles := []models.Article{
		{Title: long + " (Update)"},
		{Title: long + " (Original)"},
		{Title: "Kurzer Titel"},
		{Title: "KURZER TITEL"},
	}

	unique := dedupeByTitle(articles)
	require.Len(t, unique, 2)

	// Keys are lowercased and truncated, so both long variants and both
	// casings collapse onto their first occurrence.
	assert.Equal(t, long+" (Update)", unique[0].Title)
	assert.Equal(t, "Kurzer Titel", unique[1].Title)
}
