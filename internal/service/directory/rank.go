package directory

import (
	"sort"

	"github.com/homefix/homefix-api/internal/platform/geo"
)

// candidate pairs a details row with its computed distance.
type candidate struct {
	details    Details
	distanceKm float64
}

// rankByDistance computes the approximate planar distance from origin for
// every available candidate with both coordinates present, sorts ascending
// and truncates to limit. Candidates missing either coordinate are excluded
// entirely, not ranked with a zero or infinite distance.
func rankByDistance(origin geo.Point, details []Details, limit int) []candidate {
	candidates := make([]candidate, 0, len(details))
	for _, d := range details {
		if !d.hasLocation() || !d.available() {
			continue
		}
		candidates = append(candidates, candidate{
			details:    d,
			distanceKm: geo.DistanceKm(origin, geo.Point{Lat: *d.Lat, Lng: *d.Lng}),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distanceKm < candidates[j].distanceKm
	})

	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
