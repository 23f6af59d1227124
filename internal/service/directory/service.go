// Package directory assembles displayable provider listings from flat store
// reads: the search-page directory, the map view, and the nearby-providers
// ranking. All reads are fail-soft: a failed fetch degrades to an empty
// result for that stage and the join proceeds with defaults, so the worst
// case is an empty or partially-labeled listing, never an error.
package directory

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/homefix/homefix-api/internal/platform/geo"
	"github.com/homefix/homefix-api/internal/platform/logging"
	"github.com/homefix/homefix-api/internal/service/catalog"
)

// Display defaults for missing joins.
const (
	unknownName     = "Unknown"
	generalLabel    = "General"
	noDescription   = "No description provided"
	distanceNearby  = "Nearby"
	distanceUnknown = "Unknown"
)

// Details mirrors a provider_details row. Coordinates are pointer-typed:
// absence excludes the provider from proximity ranking and the map view.
type Details struct {
	UserID          string
	Description     string
	ExperienceYears int
	Lat             *float64
	Lng             *float64
	Available       *bool
}

// available treats a missing flag as true.
func (d Details) available() bool {
	return d.Available == nil || *d.Available
}

// hasLocation reports whether both coordinates are present.
func (d Details) hasLocation() bool {
	return d.Lat != nil && d.Lng != nil
}

// Profile is the subset of profile fields joined into listings.
type Profile struct {
	UserID   string
	FullName string
	Phone    string
}

// Summary is the provider card shown on the search page. This page does not
// compute numeric distance; the label only reflects coordinate presence.
type Summary struct {
	ID            string
	Name          string
	Phone         string
	CategoryLabel string
	DistanceLabel string
	Description   string
	Available     bool
}

// Ranked is a provider annotated with its approximate distance from the
// requester, in kilometers.
type Ranked struct {
	ID            string
	Name          string
	CategoryLabel string
	DistanceKm    float64
	Available     bool
}

// MapProvider is an available, located provider rendered as a map marker.
type MapProvider struct {
	ID          string
	Name        string
	Phone       string
	Description string
	Lat         float64
	Lng         float64
	Available   bool
	Categories  []string
}

// Store is the set of flat reads the aggregator issues. Implementations must
// not join; all joining happens client-side in this package.
type Store interface {
	// ProviderIDsByCategory returns the user ids linked to a category.
	ProviderIDsByCategory(ctx context.Context, categoryID string) ([]string, error)
	// AllDetails returns every provider_details row on record.
	AllDetails(ctx context.Context) ([]Details, error)
	// DetailsByIDs returns provider_details rows for exactly the given id set.
	DetailsByIDs(ctx context.Context, userIDs []string) ([]Details, error)
	// ProfilesByIDs batch-resolves profiles keyed by user id.
	ProfilesByIDs(ctx context.Context, userIDs []string) (map[string]Profile, error)
	// CategoryNamesByIDs batch-resolves declared category names per user id.
	CategoryNamesByIDs(ctx context.Context, userIDs []string) (map[string][]string, error)
}

// Directory aggregates provider listings over a Store and the category
// catalog.
type Directory struct {
	store       Store
	catalog     catalog.Service
	nearbyLimit int
}

// New constructs a Directory. nearbyLimit bounds Nearby when the caller does
// not supply its own bound.
func New(store Store, cat catalog.Service, nearbyLimit int) *Directory {
	if nearbyLimit <= 0 {
		nearbyLimit = 4
	}
	return &Directory{store: store, catalog: cat, nearbyLimit: nearbyLimit}
}

// List returns provider summaries, optionally filtered by category slug.
// An unmatched slug yields an empty result, not an error, and issues no
// provider_details fetch.
func (d *Directory) List(ctx context.Context, categorySlug string) []Summary {
	var ids []string
	filtered := false

	if categorySlug != "" {
		cat, err := d.catalog.BySlug(ctx, categorySlug)
		if err != nil {
			if !errors.Is(err, catalog.ErrNotFound) {
				logging.LogWarn(ctx, "category lookup failed", zap.String("slug", categorySlug), zap.Error(err))
			}
			return []Summary{}
		}
		filtered = true
		ids, err = d.store.ProviderIDsByCategory(ctx, cat.ID)
		if err != nil {
			logging.LogWarn(ctx, "provider id lookup failed", zap.String("category", cat.ID), zap.Error(err))
			return []Summary{}
		}
		// An empty filtered id set short-circuits; never issue an
		// unconstrained details fetch for it.
		if len(ids) == 0 {
			return []Summary{}
		}
	}

	var details []Details
	var err error
	if filtered {
		details, err = d.store.DetailsByIDs(ctx, ids)
	} else {
		details, err = d.store.AllDetails(ctx)
	}
	if err != nil {
		logging.LogWarn(ctx, "provider details fetch failed", zap.Error(err))
		return []Summary{}
	}
	if len(details) == 0 {
		return []Summary{}
	}

	profiles, labels := d.joinData(ctx, userIDs(details))
	return summarize(details, profiles, labels)
}

// Nearby ranks available, located providers by ascending approximate distance
// from the requester and truncates to limit (the configured bound when
// limit <= 0). Providers missing either coordinate never appear.
func (d *Directory) Nearby(ctx context.Context, lat, lng float64, limit int) []Ranked {
	if limit <= 0 {
		limit = d.nearbyLimit
	}

	details, err := d.store.AllDetails(ctx)
	if err != nil {
		logging.LogWarn(ctx, "provider details fetch failed", zap.Error(err))
		return []Ranked{}
	}

	origin := geo.Point{Lat: lat, Lng: lng}
	candidates := rankByDistance(origin, details, limit)
	if len(candidates) == 0 {
		return []Ranked{}
	}

	// Names and labels are resolved for the truncated set only.
	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.details.UserID
	}
	profiles, labels := d.joinData(ctx, ids)

	out := make([]Ranked, len(candidates))
	for i, c := range candidates {
		out[i] = Ranked{
			ID:            c.details.UserID,
			Name:          displayName(profiles, c.details.UserID),
			CategoryLabel: categoryLabel(labels[c.details.UserID]),
			DistanceKm:    c.distanceKm,
			Available:     c.details.available(),
		}
	}
	return out
}

// MapProviders returns every available provider with a location, joined with
// names and category labels, for the map view.
func (d *Directory) MapProviders(ctx context.Context) []MapProvider {
	details, err := d.store.AllDetails(ctx)
	if err != nil {
		logging.LogWarn(ctx, "provider details fetch failed", zap.Error(err))
		return []MapProvider{}
	}

	var located []Details
	for _, det := range details {
		if det.hasLocation() && det.available() {
			located = append(located, det)
		}
	}
	if len(located) == 0 {
		return []MapProvider{}
	}

	profiles, labels := d.joinData(ctx, userIDs(located))

	out := make([]MapProvider, len(located))
	for i, det := range located {
		p := profiles[det.UserID]
		out[i] = MapProvider{
			ID:          det.UserID,
			Name:        displayName(profiles, det.UserID),
			Phone:       p.Phone,
			Description: det.Description,
			Lat:         *det.Lat,
			Lng:         *det.Lng,
			Available:   det.available(),
			Categories:  labels[det.UserID],
		}
	}
	return out
}

// joinData issues the profile and category-label batch fetches for an id set.
// The two fetches are independent and run concurrently; each fails soft to an
// empty map.
func (d *Directory) joinData(ctx context.Context, ids []string) (map[string]Profile, map[string][]string) {
	var (
		wg       sync.WaitGroup
		profiles map[string]Profile
		labels   map[string][]string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		p, err := d.store.ProfilesByIDs(ctx, ids)
		if err != nil {
			logging.LogWarn(ctx, "profile batch fetch failed", zap.Error(err))
			return
		}
		profiles = p
	}()
	go func() {
		defer wg.Done()
		l, err := d.store.CategoryNamesByIDs(ctx, ids)
		if err != nil {
			logging.LogWarn(ctx, "category label batch fetch failed", zap.Error(err))
			return
		}
		labels = l
	}()
	wg.Wait()

	return profiles, labels
}

func userIDs(details []Details) []string {
	ids := make([]string, len(details))
	for i, d := range details {
		ids[i] = d.UserID
	}
	return ids
}
