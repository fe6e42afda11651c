// Package genre maps free-text query words onto the catalog's canonical genre names.
package genre

import "strings"

type keyword struct {
	key       string
	canonical string
}

// keywords is ordered so extraction is deterministic. Canonical values are
// spelled the way the catalog stores them; lookups are case-insensitive.
var keywords = []keyword{
	{"action", "Action"},
	{"anime", "animation"},
	{"adventure", "Adventure"},
	{"scifi", "ScienceFiction"},
	{"sciencefiction", "Science Fiction"},
	{"thriller", "Thriller"},
	{"crime", "Crime"},
	{"drama", "Drama"},
	{"romance", "Romance"},
	{"comedy", "Comedy"},
	{"horror", "Horror"},
	{"fantasy", "Fantasy"},
	{"mystery", "Mystery"},
	{"animation", "Animation"},
	{"family", "Family"},
	{"war", "War"},
	{"western", "Western"},
	{"history", "History"},
	{"music", "Music"},
}

// FromQuery returns the canonical genres mentioned in query. A genre matches
// when the lowercased query contains either its keyword or its lowercased
// canonical name. Genres that differ only by case are reported once.
func FromQuery(query string) []string {
	lower := strings.ToLower(query)
	var found []string
	seen := make(map[string]struct{})
	for _, kw := range keywords {
		canon := strings.ToLower(kw.canonical)
		if !strings.Contains(lower, kw.key) && !strings.Contains(lower, canon) {
			continue
		}
		if _, ok := seen[canon]; ok {
			continue
		}
		seen[canon] = struct{}{}
		found = append(found, kw.canonical)
	}
	return found
}

// Normalize lowercases and trims genre names, dropping empties and duplicates.
func Normalize(genres []string) []string {
	out := make([]string, 0, len(genres))
	seen := make(map[string]struct{}, len(genres))
	for _, g := range genres {
		g = strings.ToLower(strings.TrimSpace(g))
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// ParseList splits a comma separated genre parameter and normalizes it.
func ParseList(raw string) []string {
	return Normalize(strings.Split(raw, ","))
}
