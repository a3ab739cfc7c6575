// Package departures models pickup locations offered for a stay and the
// display filtering applied before they are surfaced to a user. The display
// allow-list is independent from the pricing surcharge set: the first decides
// what is shown, the second what is billed.
package departures

import (
	"sort"
	"strings"

	"gedsejours/internal/domain/pricing"
)

// City is a named pickup location with its transport extra in whole euros.
type City struct {
	Name     string `json:"name"`
	ExtraEur int    `json:"extra_eur"`
}

// SansTransport is the synthetic "no transport" entry. It always costs zero
// and sorts first in user-facing orderings.
func SansTransport() City {
	return City{Name: pricing.SansTransport, ExtraEur: 0}
}

// IsSansTransport reports whether the city is the synthetic no-transport
// entry.
func (c City) IsSansTransport() bool {
	return strings.EqualFold(strings.TrimSpace(c.Name), pricing.SansTransport)
}

// StandardCities is the default display allow-list. It intentionally carries
// the same ten names as the pricing surcharge set today, but the two lists
// are configured separately.
func StandardCities() []string {
	return []string{
		"Paris", "Lyon", "Rennes", "Toulouse", "Valence",
		"Grenoble", "Marseille", "Strasbourg", "Lille", "Bordeaux",
	}
}

// FilterStandard keeps the synthetic Sans transport entry plus cities whose
// name contains one of the allowed names, case-insensitively. Enrichment data
// carries station qualifiers ("Paris - Gare de Lyon"), hence containment
// rather than equality.
func FilterStandard(cities []City, allowed []string) []City {
	out := make([]City, 0, len(cities))
	for _, c := range cities {
		if c.IsSansTransport() {
			out = append(out, City{Name: pricing.SansTransport, ExtraEur: 0})
			continue
		}
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name == "" {
			continue
		}
		for _, a := range allowed {
			if strings.Contains(name, strings.ToLower(a)) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Sort orders cities for display: Sans transport first, then by name.
func Sort(cities []City) {
	sort.SliceStable(cities, func(i, j int) bool {
		si, sj := cities[i].IsSansTransport(), cities[j].IsSansTransport()
		if si != sj {
			return si
		}
		return strings.ToLower(cities[i].Name) < strings.ToLower(cities[j].Name)
	})
}

// Extra returns the transport supplement for the named city within the
// offered list, zero when the city is unknown or Sans transport. Unknown
// cities are a policy gap, not an error.
func Extra(cities []City, name string) int {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, pricing.SansTransport) {
		return 0
	}
	for _, c := range cities {
		if strings.EqualFold(strings.TrimSpace(c.Name), name) {
			return c.ExtraEur
		}
	}
	return 0
}
