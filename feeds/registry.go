package feeds

import (
	"strings"

	"github.com/evportal-ch/newshub/models"
)

// RegionGroupCodes maps a region-group query value to the region codes it
// admits. Some codes (UK, EU, SI, BA) have no configured source yet; they are
// kept so adding such a source later needs no filter change.
var RegionGroupCodes = map[string][]string{
	"swiss":         {"CH"},
	"german":        {"DE"},
	"international": {"US", "UK", "EU"},
	"balkan":        {"RS", "HR", "SI", "BA"},
}

// Registry holds the static feed configuration, grouped by region.
// It is immutable after construction.
type Registry struct {
	groupOrder []string
	groups     map[string][]models.FeedSource
}

// DefaultRegistry returns the built-in set of EV news sources.
func DefaultRegistry() *Registry {
	return NewRegistry(map[string][]models.FeedSource{
		"swiss": {
			{URL: "https://www.tcs.ch/de/testberichte-ratgeber/ratgeber/rss/elektromobilitaet.rss", Name: "TCS Elektromobilität", Language: "de", Region: "CH"},
			{URL: "https://www.blick.ch/auto/rss.xml", Name: "Blick Auto", Language: "de", Region: "CH"},
		},
		"german": {
			{URL: "https://www.electrive.net/feed/", Name: "Electrive.net", Language: "de", Region: "DE"},
			{URL: "https://ecomento.de/feed/", Name: "Ecomento", Language: "de", Region: "DE"},
			{URL: "https://www.elektroauto-news.net/feed/", Name: "Elektroauto-News", Language: "de", Region: "DE"},
			{URL: "https://teslamag.de/feed", Name: "Teslamag", Language: "de", Region: "DE"},
			{URL: "https://www.golem.de/rss.php?tp=auto", Name: "Golem Auto", Language: "de", Region: "DE"},
		},
		"international": {
			{URL: "https://electrek.co/feed/", Name: "Electrek", Language: "en", Region: "US"},
			{URL: "https://insideevs.com/rss/news/all/", Name: "InsideEVs", Language: "en", Region: "US"},
			{URL: "https://cleantechnica.com/feed/", Name: "CleanTechnica", Language: "en", Region: "US"},
			{URL: "https://www.greencarreports.com/rss/news", Name: "Green Car Reports", Language: "en", Region: "US"},
			{URL: "https://chargedevs.com/feed/", Name: "Charged EVs", Language: "en", Region: "US"},
		},
		"balkan": {
			{URL: "https://www.netokracija.rs/feed", Name: "Netokracija RS", Language: "sr", Region: "RS"},
			{URL: "https://www.netokracija.com/feed", Name: "Netokracija HR", Language: "hr", Region: "HR"},
			{URL: "https://www.automarket.hr/rss/vijesti", Name: "Automarket HR", Language: "hr", Region: "HR"},
			{URL: "https://www.automobili.hr/rss.xml", Name: "Automobili HR", Language: "hr", Region: "HR"},
		},
	}, []string{"swiss", "german", "international", "balkan"})
}

// NewRegistry builds a registry from grouped sources. The group order is
// preserved for listing endpoints. Each source's RegionGroup is stamped from
// the group it belongs to.
func NewRegistry(groups map[string][]models.FeedSource, groupOrder []string) *Registry {
	stamped := make(map[string][]models.FeedSource, len(groups))
	for group, sources := range groups {
		out := make([]models.FeedSource, len(sources))
		for i, source := range sources {
			source.RegionGroup = group
			out[i] = source
		}
		stamped[group] = out
	}
	return &Registry{groupOrder: groupOrder, groups: stamped}
}

// All returns every configured source in group order.
func (r *Registry) All() []models.FeedSource {
	var all []models.FeedSource
	for _, group := range r.groupOrder {
		all = append(all, r.groups[group]...)
	}
	return all
}

// Count reports the number of configured sources.
func (r *Registry) Count() int {
	count := 0
	for _, sources := range r.groups {
		count += len(sources)
	}
	return count
}

// Groups returns the region-group names in configuration order.
func (r *Registry) Groups() []string {
	groups := make([]string, len(r.groupOrder))
	copy(groups, r.groupOrder)
	return groups
}

// Languages returns the distinct language codes across all sources,
// in first-seen order.
func (r *Registry) Languages() []string {
	seen := make(map[string]struct{})
	var languages []string
	for _, source := range r.All() {
		if _, ok := seen[source.Language]; ok {
			continue
		}
		seen[source.Language] = struct{}{}
		languages = append(languages, source.Language)
	}
	return languages
}

// DisplayURL strips trailing feed-path suffixes from a source URL for
// listing purposes.
func DisplayURL(url string) string {
	for _, suffix := range []string{"/feed/", "/feed", "/rss"} {
		if strings.HasSuffix(url, suffix) {
			return strings.TrimSuffix(url, suffix)
		}
	}
	return url
}
