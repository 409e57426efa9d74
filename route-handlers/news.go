package routehandlers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/evportal-ch/newshub/feeds"
	"github.com/evportal-ch/newshub/models"
	"github.com/evportal-ch/newshub/news"
	"github.com/evportal-ch/newshub/webutil"
)

const defaultNewsLimit = 50

// NewsHandler serves the aggregated-news endpoints. All reads go through the
// cache; upstream feed failures surface only as a smaller or older article
// list, never as a 5xx.
type NewsHandler struct {
	Registry *feeds.Registry
	Cache    *news.Cache
}

func NewNewsHandler(registry *feeds.Registry, cache *news.Cache) *NewsHandler {
	return &NewsHandler{Registry: registry, Cache: cache}
}

type newsFilters struct {
	Region   string `json:"region"`
	Category string `json:"category"`
	Language string `json:"language"`
}

type newsResponse struct {
	Articles        []models.Article `json:"articles"`
	Total           int              `json:"total"`
	CacheAgeMinutes float64          `json:"cache_age_minutes"`
	SourcesCount    int              `json:"sources_count"`
	Filters         newsFilters      `json:"filters"`
}

func (h *NewsHandler) HandleGetNews(w http.ResponseWriter, r *http.Request) error {
	query := r.URL.Query()

	limit := defaultNewsLimit
	if raw := query.Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return webutil.ErrBadRequest("Invalid limit parameter")
		}
		limit = parsed
	}

	force := false
	if raw := query.Get("refresh"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return webutil.ErrBadRequest("Invalid refresh parameter")
		}
		force = parsed
	}

	filters := newsFilters{
		Region:   query.Get("region"),
		Category: query.Get("category"),
		Language: query.Get("language"),
	}

	articles, _ := h.Cache.Articles(r.Context(), force)

	filtered := filterArticles(articles, filters)
	if limit < len(filtered) {
		filtered = filtered[:limit]
	}

	webutil.RespondWithJSON(w, http.StatusOK, newsResponse{
		Articles:        filtered,
		Total:           len(filtered),
		CacheAgeMinutes: math.Round(h.Cache.Age().Minutes()*10) / 10,
		SourcesCount:    h.Registry.Count(),
		Filters:         filters,
	})
	return nil
}

// filterArticles applies the region-group, category and language filters.
// An unknown region group or category is not an error; it legitimately
// matches nothing.
func filterArticles(articles []models.Article, filters newsFilters) []models.Article {
	filtered := make([]models.Article, 0, len(articles))
	for _, article := range articles {
		if filters.Region != "" && !containsString(feeds.RegionGroupCodes[filters.Region], article.Region) {
			continue
		}
		if filters.Language != "" && article.Language != filters.Language {
			continue
		}
		if filters.Category != "" && !containsString(article.Categories, filters.Category) {
			continue
		}
		filtered = append(filtered, article)
	}
	return filtered
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}

type sourceInfo struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Language    string `json:"language"`
	Region      string `json:"region"`
	RegionGroup string `json:"region_group"`
}

func (h *NewsHandler) HandleGetSources(w http.ResponseWriter, r *http.Request) error {
	all := h.Registry.All()
	sources := make([]sourceInfo, 0, len(all))
	for _, source := range all {
		sources = append(sources, sourceInfo{
			Name:        source.Name,
			URL:         feeds.DisplayURL(source.URL),
			Language:    source.Language,
			Region:      source.Region,
			RegionGroup: source.RegionGroup,
		})
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]any{
		"sources":   sources,
		"total":     len(sources),
		"regions":   h.Registry.Groups(),
		"languages": h.Registry.Languages(),
	})
	return nil
}

func (h *NewsHandler) HandleGetCategories(w http.ResponseWriter, r *http.Request) error {
	webutil.RespondWithJSON(w, http.StatusOK, map[string]any{
		"categories": feeds.Categories(),
	})
	return nil
}

func (h *NewsHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) error {
	articles, updatedAt := h.Cache.Refresh(r.Context())

	webutil.RespondWithJSON(w, http.StatusOK, map[string]any{
		"status":         "refreshed",
		"articles_count": len(articles),
		"timestamp":      updatedAt,
	})
	return nil
}
