package feeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	assert.Equal(t, 16, registry.Count())
	assert.Equal(t, []string{"swiss", "german", "international", "balkan"}, registry.Groups())
	assert.ElementsMatch(t, []string{"de", "en", "sr", "hr"}, registry.Languages())

	all := registry.All()
	require.Len(t, all, 16)
	for _, source := range all {
		assert.NotEmpty(t, source.URL)
		assert.NotEmpty(t, source.Name)
		assert.NotEmpty(t, source.RegionGroup, "source %s missing region group", source.Name)
	}

	// Group order determines flattened order.
	assert.Equal(t, "CH", all[0].Region)
	assert.Equal(t, "swiss", all[0].RegionGroup)
	assert.Equal(t, "balkan", all[len(all)-1].RegionGroup)
}

func TestRegionGroupCodes(t *testing.T) {
	assert.Equal(t, []string{"CH"}, RegionGroupCodes["swiss"])
	assert.Nil(t, RegionGroupCodes["unknown"])
}

func TestDisplayURL(t *testing.T) {
	assert.Equal(t, "https://www.electrive.net", DisplayURL("https://www.electrive.net/feed/"))
	assert.Equal(t, "https://teslamag.de", DisplayURL("https://teslamag.de/feed"))
	assert.Equal(t, "https://example.com/news", DisplayURL("https://example.com/news/rss"))

	// Only trailing suffixes are stripped.
	assert.Equal(t, "https://www.automarket.hr/rss/vijesti", DisplayURL("https://www.automarket.hr/rss/vijesti"))
	assert.Equal(t, "https://www.golem.de/rss.php?tp=auto", DisplayURL("https://www.golem.de/rss.php?tp=auto"))
}
