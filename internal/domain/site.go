// Package domain defines the core types shared across polyscan packages.
//
// This package contains pure data types with no behavior dependencies.
// It may import internal/errors but MUST NOT import other internal packages.
package domain

// Site is one entry of the top-sites dataset.
type Site struct {
	// Origin is the site origin including scheme (e.g. "https://web.facebook.com").
	Origin string `json:"origin" yaml:"origin"`

	// Rank is the CrUX popularity rank bucket (1000, 5000, 10000, ...).
	// Lower is more popular.
	Rank int `json:"rank" yaml:"rank"`
}

// FilterSites applies the rank cutoff and then the head limit, preserving
// dataset order. A maxSites of 0 or less means no limit. This mirrors the
// two-step filter of the original investigation: rank <= maxRank first,
// then the first maxSites entries.
func FilterSites(sites []Site, maxRank, maxSites int) []Site {
	filtered := make([]Site, 0, len(sites))
	for _, s := range sites {
		if maxRank > 0 && s.Rank > maxRank {
			continue
		}
		filtered = append(filtered, s)
		if maxSites > 0 && len(filtered) >= maxSites {
			break
		}
	}
	return filtered
}
