package feeds

import "strings"

// FallbackCategory labels articles that match no taxonomy keyword.
const FallbackCategory = "general"

// Category describes one entry of the fixed news taxonomy as exposed to
// clients.
type Category struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Icon   string `json:"icon"`
	NameDE string `json:"name_de"`
	NameEN string `json:"name_en"`
}

// categoryOrder fixes the evaluation and listing order of the taxonomy.
var categoryOrder = []string{
	"vehicles", "battery", "charging", "policy", "market", "technology", "infrastructure",
}

// categoryKeywords holds lowercase keyword stems per category, covering
// German, English and the regional languages of the configured sources.
// A stem matches as a plain substring of the lowercased title+summary.
var categoryKeywords = map[string][]string{
	"vehicles":       {"fahrzeug", "vehicle", "auto", "car", "model", "modell", "ev", "elektroauto", "automobil", "vozilo"},
	"battery":        {"batterie", "battery", "akku", "zelle", "cell", "reichweite", "range", "degradation", "lebensdauer", "baterija"},
	"charging":       {"laden", "charging", "ladestation", "charger", "ladesäule", "wallbox", "schnellladen", "dc", "ac", "punjenje", "punjač"},
	"policy":         {"förderung", "subsidy", "gesetz", "law", "regulierung", "regulation", "steuer", "tax", "politik", "policy", "zakon", "poticaj"},
	"market":         {"markt", "market", "verkauf", "sales", "zulassung", "registration", "statistik", "statistic", "preis", "price", "tržište"},
	"technology":     {"technologie", "technology", "update", "software", "ota", "autopilot", "fsd", "tuning", "upgrade", "tehnologija"},
	"infrastructure": {"infrastruktur", "infrastructure", "netzwerk", "network", "ausbau", "expansion", "strom", "grid", "mreža"},
}

// Categorize tags an article with every category whose keyword list matches
// the combined title and summary. Labels are non-exclusive; an article that
// matches nothing gets exactly the fallback label, never an empty set.
func Categorize(title, summary string) []string {
	text := strings.ToLower(title + " " + summary)

	var labels []string
	for _, category := range categoryOrder {
		for _, keyword := range categoryKeywords[category] {
			if strings.Contains(text, keyword) {
				labels = append(labels, category)
				break
			}
		}
	}

	if len(labels) == 0 {
		return []string{FallbackCategory}
	}
	return labels
}

// Categories returns the client-facing taxonomy, including the fallback
// category.
func Categories() []Category {
	return []Category{
		{ID: "vehicles", Name: "Neue Fahrzeuge", Icon: "🚗", NameDE: "Neue Fahrzeuge", NameEN: "New Vehicles"},
		{ID: "battery", Name: "Batterie & Reichweite", Icon: "🔋", NameDE: "Batterie & Reichweite", NameEN: "Battery & Range"},
		{ID: "charging", Name: "Laden & Infrastruktur", Icon: "⚡", NameDE: "Laden & Infrastruktur", NameEN: "Charging & Infrastructure"},
		{ID: "policy", Name: "Politik & Förderung", Icon: "📜", NameDE: "Politik & Förderung", NameEN: "Policy & Subsidies"},
		{ID: "market", Name: "Markt & Wirtschaft", Icon: "📊", NameDE: "Markt & Wirtschaft", NameEN: "Market & Economy"},
		{ID: "technology", Name: "Technologie & Updates", Icon: "🔧", NameDE: "Technologie & Updates", NameEN: "Technology & Updates"},
		{ID: "infrastructure", Name: "Netzwerk & Ausbau", Icon: "🌐", NameDE: "Netzwerk & Ausbau", NameEN: "Network & Expansion"},
		{ID: "general", Name: "Allgemein", Icon: "📰", NameDE: "Allgemein", NameEN: "General"},
	}
}
